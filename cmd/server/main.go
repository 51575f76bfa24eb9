package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/plumeblog/plume/config"
	"github.com/plumeblog/plume/internal/api"
	"github.com/plumeblog/plume/internal/api/handler"
	"github.com/plumeblog/plume/internal/cache"
	"github.com/plumeblog/plume/internal/repository"
	"github.com/plumeblog/plume/internal/service"
	"github.com/plumeblog/plume/internal/storage"
	"github.com/plumeblog/plume/pkg/database"
	"github.com/plumeblog/plume/pkg/logger"
	"github.com/plumeblog/plume/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing := must(tracing.Init(ctx, cfg))
	defer func() { _ = shutdownTracing(ctx) }()

	db := must(database.InitDB(cfg))

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	feedCache := cache.NewFeedCache(rdb, cfg.Feed.CacheTTL)

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.Session.Secret, cfg.Session.TTL)
	feedSvc := service.NewFeedService(postRepo, userRepo, groupRepo, commentRepo, followRepo, feedCache, cfg.Feed.PageSize)
	publishSvc := service.NewPublishService(postRepo, commentRepo, groupRepo, feedCache)
	relSvc := service.NewRelationshipService(followRepo, userRepo)
	media := storage.NewMediaStore(cfg.Media.Dir)

	h := handler.New(feedSvc, publishSvc, relSvc, authSvc, groupRepo, media)
	router := api.NewRouter(h, authSvc, cfg, "templates/*.html", cfg.Media.Dir)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
