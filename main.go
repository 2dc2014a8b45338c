package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"blogapp/config"
	"blogapp/global"
	"blogapp/middlewares"
	"blogapp/router"
	"blogapp/services"
)

func main() {
	config.InitConfig()
	defer config.CloseRabbit()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.AppConfig
	if err := services.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		global.Log.WithError(err).Warn("admin account not seeded")
	}

	services.EventQueue = cfg.RabbitMQ.Queue
	if global.RabbitChannel != nil {
		go func() {
			if err := services.ConsumeArticleEvents(ctx, global.RabbitChannel, cfg.RabbitMQ.Queue); err != nil && !errors.Is(err, context.Canceled) {
				global.Log.WithError(err).Error("article event consumer stopped")
			}
		}()
	}

	authn := middlewares.NewAuthenticator(cfg.Auth)
	if sessions, ok := authn.(*middlewares.SessionAuthenticator); ok {
		go purgeSessions(ctx, sessions.Store)
	}

	srv := &http.Server{
		Addr:    cfg.App.Port,
		Handler: router.SetupRouter(authn),
	}

	go func() {
		global.Log.WithField("addr", cfg.App.Port).Info("blog listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			global.Log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	global.Log.Info("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		global.Log.WithError(err).Error("server shutdown")
	}
}

func purgeSessions(ctx context.Context, store *middlewares.SessionStore) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Purge(); n > 0 {
				global.Log.WithField("expired", n).Debug("purged sessions")
			}
		}
	}
}
