package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAck struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (f *fakeAck) Ack(tag uint64, multiple bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeAck) Nack(tag uint64, multiple, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nacked = append(f.nacked, tag)
	f.requeue = append(f.requeue, requeue)
	return nil
}

func (f *fakeAck) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func delivery(t *testing.T, ack amqp.Acknowledger, tag uint64, ev interface{}) amqp.Delivery {
	t.Helper()
	var body []byte
	if raw, ok := ev.(string); ok {
		body = []byte(raw)
	} else {
		b, err := json.Marshal(ev)
		require.NoError(t, err)
		body = b
	}
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: body}
}

func TestPublishArticleEvent_InlineWithoutBroker(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set(htmlKey(3), "<p>stale</p>"))

	err := PublishArticleEvent(bg, ArticleEvent{Type: EventArticleUpdated, ArticleID: 3, At: time.Now()})
	require.NoError(t, err)
	assert.False(t, mr.Exists(htmlKey(3)))
}

func TestHandleArticleEvent_Deleted(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set(htmlKey(5), "<p>x</p>"))
	require.NoError(t, mr.Set(viewKey("5"), "9"))
	_, err := mr.ZAdd(rankKey, 9, "5")
	require.NoError(t, err)

	require.NoError(t, HandleArticleEvent(bg, ArticleEvent{Type: EventArticleDeleted, ArticleID: 5}))

	assert.False(t, mr.Exists(htmlKey(5)))
	assert.False(t, mr.Exists(viewKey("5")))
	assert.False(t, mr.Exists(rankKey))
}

func TestHandleArticleEvent_UnknownIsIgnored(t *testing.T) {
	assert.NoError(t, HandleArticleEvent(bg, ArticleEvent{Type: "tag.renamed"}))
}

func TestHandleDeliveries(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set(htmlKey(1), "<p>old</p>"))

	ack := &fakeAck{}
	deliveries := make(chan amqp.Delivery, 3)
	deliveries <- delivery(t, ack, 1, ArticleEvent{Type: EventArticleUpdated, ArticleID: 1})
	deliveries <- delivery(t, ack, 2, "{not json")
	deliveries <- delivery(t, ack, 3, ArticleEvent{Type: EventArticleCreated, ArticleID: 2})
	close(deliveries)

	err := handleDeliveries(context.Background(), deliveries)
	assert.EqualError(t, err, "article event channel closed")

	assert.Equal(t, []uint64{1, 3}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.nacked)
	assert.Equal(t, []bool{false}, ack.requeue)
	assert.False(t, mr.Exists(htmlKey(1)))
}

func TestHandleDeliveries_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handleDeliveries(ctx, make(chan amqp.Delivery))
	assert.ErrorIs(t, err, context.Canceled)
}
