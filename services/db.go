package services

import (
	"context"

	"blogapp/global"

	"github.com/go-redis/redis"
	"gorm.io/gorm"
)

func orm(ctx context.Context) *gorm.DB {
	return global.Db.WithContext(ctx)
}

// cache returns nil when Redis is not configured.
func cache(ctx context.Context) *redis.Client {
	if global.RedisDB == nil {
		return nil
	}
	return global.RedisDB.WithContext(ctx)
}
