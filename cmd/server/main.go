// Bibliotekopol library service entrypoint.
//
// @title           Bibliotekopol Library API
// @version         1.0
// @description     Book catalog, borrowing, and user administration API.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bibliotekopol/library-system/internal/api"
	"github.com/bibliotekopol/library-system/internal/core/service"
	"github.com/bibliotekopol/library-system/internal/infrastructure/config"
	mongodb "github.com/bibliotekopol/library-system/internal/infrastructure/db/mongo"
	redisdb "github.com/bibliotekopol/library-system/internal/infrastructure/db/redis"
	"github.com/bibliotekopol/library-system/internal/infrastructure/queue"
	"github.com/bibliotekopol/library-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Pretty: os.Getenv("ENV") == "development"})
	cfg := config.Load(ctx)

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	if err := bootstrap(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("database bootstrap failed")
	}

	activityService := service.NewActivityService(mongodb.NewActivityRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.LoanEventWorkers, activityService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("library service listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// bootstrap creates indexes and inserts the demo seed rows on first run.
func bootstrap(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewBookRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewBorrowRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.Seed(ctx, db)
}
