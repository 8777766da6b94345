package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aldodev/portfolio-api/internal/api"
	"github.com/aldodev/portfolio-api/internal/core/ports"
	"github.com/aldodev/portfolio-api/internal/infrastructure/assets"
	"github.com/aldodev/portfolio-api/internal/infrastructure/config"
	mongodb "github.com/aldodev/portfolio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/aldodev/portfolio-api/internal/infrastructure/db/redis"
	"github.com/aldodev/portfolio-api/internal/infrastructure/queue"
	"github.com/aldodev/portfolio-api/internal/infrastructure/session"
	"github.com/aldodev/portfolio-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}()

	// The Redis client only exists when the session registry needs it.
	var rdb *goredis.Client
	var registry ports.SessionRegistry
	switch cfg.Session.Store {
	case "redis":
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		registry = redisdb.NewSessionRegistry(rdb, cfg.Session.IdleTimeout)
	default:
		registry = session.NewMemoryRegistry(cfg.Session.IdleTimeout)
	}

	if err := mongodb.NewCredentialStore(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("could not ensure admin indexes")
	}

	store := assets.NewCloudinaryStore(assets.CloudinaryConfig{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	})
	dispatcher := queue.NewDispatcher(0, store, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, registry, dispatcher, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("session_store", cfg.Session.Store).Msg("portfolio backend started")

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
