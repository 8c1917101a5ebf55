package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prostore/catalog-api/internal/api"
	"github.com/prostore/catalog-api/internal/core/service"
	"github.com/prostore/catalog-api/internal/infrastructure/config"
	mongodb "github.com/prostore/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/prostore/catalog-api/internal/infrastructure/db/redis"
	"github.com/prostore/catalog-api/internal/infrastructure/queue"
	"github.com/prostore/catalog-api/pkg/logger"
)

// @title        Product Catalog API
// @version      1.0
// @description  REST API for a product catalog with JWT auth and owner-or-admin authorization.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; this is the one place we write raw.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
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
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("product indexes failed")
	}

	tokenService, err := service.NewTokenService(cfg.JWTSecret, 24*time.Hour)
	if err != nil {
		log.Fatal().Err(err).Msg("token service init failed")
	}

	cache := redisdb.NewCatalogCache(rdb, log)
	authService := service.NewAuthService(userRepo, tokenService, log)
	productService := service.NewProductService(productRepo, userRepo, cache, log)

	dispatcher := queue.NewDispatcher(productService, log)
	dispatcher.Start(ctx)
	productService.SetRefreshQueue(dispatcher)

	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		ProductService: productService,
		TokenService:   tokenService,
		UserRepo:       userRepo,
		Mongo:          db,
		Redis:          rdb,
		ClientURL:      cfg.ClientURL,
		Logger:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
