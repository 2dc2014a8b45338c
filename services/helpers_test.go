package services

import (
	"context"
	"testing"
	"time"

	"blogapp/global"
	"blogapp/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.AutoMigrate(db))

	prev := global.Db
	global.Db = db
	t.Cleanup(func() {
		global.Db = prev
		_ = sqlDB.Close()
	})
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	prev := global.RedisDB
	global.RedisDB = client
	t.Cleanup(func() {
		global.RedisDB = prev
		_ = client.Close()
	})
	return mr
}

func seedTag(t *testing.T, name string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name}
	require.NoError(t, global.Db.Create(&tag).Error)
	return tag
}

func seedArticle(t *testing.T, title string, created time.Time, tags ...models.Tag) models.Article {
	t.Helper()
	a := models.Article{Title: title, ContentMD: "body of " + title, CreatedAt: created, UpdatedAt: created}
	require.NoError(t, global.Db.Create(&a).Error)
	for _, tag := range tags {
		require.NoError(t, global.Db.Create(&models.ArticleTag{ArticleID: a.ID, TagID: tag.ID}).Error)
	}
	return a
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

var bg = context.Background()
