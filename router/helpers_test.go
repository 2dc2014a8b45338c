package router

import (
	"time"

	"blogapp/config"
)

func configAuth(mode string) config.AuthConfig {
	return config.AuthConfig{Mode: mode, JWTSecret: "router-test-secret", TTL: time.Hour}
}
