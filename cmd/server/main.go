// Command server runs the marketplace HTTP API.
//
// @title                       Marketplace API
// @version                     1.0
// @description                 Accounts, bearer-token auth and a product catalog.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/marketplace/marketplace-api/docs"
	"github.com/marketplace/marketplace-api/internal/api"
	"github.com/marketplace/marketplace-api/internal/api/handler"
	"github.com/marketplace/marketplace-api/internal/core/ports"
	"github.com/marketplace/marketplace-api/internal/core/service"
	mongodb "github.com/marketplace/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/marketplace/marketplace-api/internal/infrastructure/db/redis"
	"github.com/marketplace/marketplace-api/internal/pkg/config"
	"github.com/marketplace/marketplace-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "marketplace-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	accountRepo := mongodb.NewAccountRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	if err := mongodb.EnsureIndexes(ctx, accountRepo, productRepo); err != nil {
		return err
	}

	checks := []handler.DependencyCheck{
		{Name: "mongodb", Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) }},
	}

	// --- Optional product cache ---
	var cache ports.ProductCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)

		cache = redisdb.NewProductCache(rdb, cfg.Redis.CacheTTL)
		checks = append(checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("product cache enabled")
	}

	// --- Services ---
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn)
	accounts := service.NewAccountService(accountRepo, hasher, tokens, logger.Component("accounts"))
	products := service.NewProductService(productRepo, cache, logger.Component("products"))

	if cfg.SeedOnStart {
		seeder := service.NewSeeder(accountRepo, productRepo, hasher, logger.Component("seeder"))
		if err := seeder.Seed(ctx); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Dependencies{
		Accounts:   accounts,
		Products:   products,
		Tokens:     tokens,
		Identities: accountRepo,
		Checks:     checks,
		Logger:     logger.Component("http"),
	})

	// --- Serve until signalled ---
	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Warn().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server exited gracefully")
	return nil
}

func closeRedis(rdb *redis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close failed")
	}
}
