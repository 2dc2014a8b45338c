package services

import (
	"context"
	"encoding/json"
	"time"

	"blogapp/global"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	EventArticleCreated = "article.created"
	EventArticleUpdated = "article.updated"
	EventArticleDeleted = "article.deleted"
)

// EventQueue is the RabbitMQ queue article events are published to.
var EventQueue = "blog.article.events"

type ArticleEvent struct {
	Type      string    `json:"type"`
	ArticleID uint      `json:"article_id"`
	At        time.Time `json:"at"`
}

// PublishArticleEvent sends ev to RabbitMQ, or handles it in place when no
// channel is open.
func PublishArticleEvent(ctx context.Context, ev ArticleEvent) error {
	ch := global.RabbitChannel
	if ch == nil {
		return HandleArticleEvent(ctx, ev)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "encode article event")
	}
	err = ch.PublishWithContext(ctx, "", EventQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.At,
		Type:         ev.Type,
		Body:         body,
	})
	return errors.Wrap(err, "publish article event")
}

// notify publishes ev and only logs failures; the write it reports on has
// already been committed.
func notify(ctx context.Context, ev ArticleEvent) {
	if err := PublishArticleEvent(ctx, ev); err != nil {
		global.Log.WithError(err).WithFields(logrus.Fields{
			"event":      ev.Type,
			"article_id": ev.ArticleID,
		}).Warn("article event not delivered")
	}
}

func HandleArticleEvent(ctx context.Context, ev ArticleEvent) error {
	switch ev.Type {
	case EventArticleCreated:
		return nil
	case EventArticleUpdated:
		return InvalidateArticleCache(ctx, ev.ArticleID)
	case EventArticleDeleted:
		if err := InvalidateArticleCache(ctx, ev.ArticleID); err != nil {
			return err
		}
		return forgetArticleViews(ctx, ev.ArticleID)
	default:
		global.Log.WithField("event", ev.Type).Warn("unknown article event")
		return nil
	}
}

// ConsumeArticleEvents reads the event queue until ctx is cancelled.
func ConsumeArticleEvents(ctx context.Context, ch *amqp.Channel, queue string) error {
	deliveries, err := ch.Consume(queue, "blog-article-events", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "consume article events")
	}
	return handleDeliveries(ctx, deliveries)
}

func handleDeliveries(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("article event channel closed")
			}

			var ev ArticleEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				global.Log.WithError(err).Warn("drop malformed article event")
				_ = d.Nack(false, false)
				continue
			}

			if err := HandleArticleEvent(ctx, ev); err != nil {
				global.Log.WithError(err).WithField("event", ev.Type).Error("handle article event")
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
