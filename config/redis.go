package config

import (
	"blogapp/global"

	"github.com/go-redis/redis"
)

func initRedis() {
	addr := AppConfig.Redis.Addr
	if addr == "" {
		global.Log.Info("redis addr empty, view counters and html cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       AppConfig.Redis.DB,
		Password: AppConfig.Redis.Password,
	})

	if _, err := client.Ping().Result(); err != nil {
		global.Log.Fatalf("Failed to connect to Redis: %v", err)
	}

	global.RedisDB = client
}
