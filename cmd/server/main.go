package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jerynmathew/thurup-sub001/internal/cache"
	"github.com/jerynmathew/thurup-sub001/internal/config"
	"github.com/jerynmathew/thurup-sub001/internal/database"
	"github.com/jerynmathew/thurup-sub001/internal/server"
)

func main() {
	cfg := config.Load()
	logrus.SetLevel(cfg.LogLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL != "" {
		if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
			logrus.WithError(err).Fatal("could not connect to postgres")
		}
		defer database.Close()
		logrus.Info("postgres connected")
	} else {
		logrus.Warn("DATABASE_URL not set, round persistence disabled")
	}

	if cfg.RedisURL != "" {
		if err := cache.InitRedis(ctx, cfg.RedisURL); err != nil {
			logrus.WithError(err).Fatal("could not connect to redis")
		}
		defer cache.Close()
		logrus.Info("redis connected")
	} else {
		logrus.Warn("REDIS_URL not set, action history disabled")
	}

	gs := server.NewGameServer(ctx, cfg.JWTSecret, cfg.BotDelay)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           gs.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("server shutdown failed")
		}
	}()

	logrus.WithField("addr", cfg.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("server exited")
	}
	logrus.Info("server stopped")
}
