package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/workplace-hq/workplace-api/internal/api"
	"github.com/workplace-hq/workplace-api/internal/core/token"
	"github.com/workplace-hq/workplace-api/internal/infrastructure/config"
	mongodb "github.com/workplace-hq/workplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/workplace-hq/workplace-api/internal/infrastructure/db/redis"
	"github.com/workplace-hq/workplace-api/internal/infrastructure/queue"
	"github.com/workplace-hq/workplace-api/internal/infrastructure/storage"
	"github.com/workplace-hq/workplace-api/pkg/logger"

	_ "github.com/workplace-hq/workplace-api/docs"
)

const shutdownTimeout = 10 * time.Second

// @title        Workplace API
// @version      1.0
// @description  User accounts and workplace listings with media uploads.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	blobStore, err := storage.NewBlobStore(ctx, storage.Config{
		Endpoint:     cfg.Blob.Endpoint,
		Region:       cfg.Blob.Region,
		Bucket:       cfg.Blob.Bucket,
		AccessKey:    cfg.Blob.AccessKey,
		SecretKey:    cfg.Blob.SecretKey,
		PublicDomain: cfg.Blob.PublicDomain,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("blob store setup failed")
	}

	cleaner := queue.NewBlobCleaner(0, blobStore, log)
	cleaner.Start(ctx)

	tokens := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)

	e := api.NewRouter(api.Dependencies{
		DB:      db,
		Redis:   rdb,
		Media:   blobStore,
		Cleaner: cleaner,
		Tokens:  tokens,
		Log:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
