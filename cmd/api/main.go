package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lunargrid/lunargrid/internal/grid"
	"github.com/lunargrid/lunargrid/internal/infra/memory"
	"github.com/lunargrid/lunargrid/internal/infra/postgres"
	infraredis "github.com/lunargrid/lunargrid/internal/infra/redis"
	"github.com/lunargrid/lunargrid/internal/platform/taxonomy"
	"github.com/lunargrid/lunargrid/internal/platform/transaction"
	"github.com/lunargrid/lunargrid/internal/platform/user"
	"github.com/lunargrid/lunargrid/internal/transport/httpapi"
	"github.com/lunargrid/lunargrid/internal/transport/httpapi/handler"
	"github.com/lunargrid/lunargrid/internal/transport/httpapi/middleware"
	"github.com/lunargrid/lunargrid/pkg/config"
	"github.com/lunargrid/lunargrid/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewDefault(cfg.Env)
	log.Info("Starting LunarGrid API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Apply schema migrations before opening the pool
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	log.Info("Database migrations applied")

	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Expand state lives in Redis when configured; otherwise it falls back
	// to process memory and is lost on restart.
	var expandStore grid.ExpandStore = memory.NewExpandStore()
	if cfg.RedisURL != "" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Failed to connect to Redis, expand state will not persist", "error", err)
		} else {
			expandStore = infraredis.NewExpandStoreWithTTL(redisClient, cfg.ExpandStateTTL, log)
			log.Info("Redis connection established")
		}
	} else {
		log.Warn("REDIS_URL not configured, expand state will not persist")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db.Pool)
	categoryRepo := postgres.NewCategoryRepository(db.Pool)
	transactionRepo := postgres.NewTransactionRepository(db.Pool)

	// Services
	userSvc := user.NewService(userRepo, log)
	taxonomySvc := taxonomy.NewService(categoryRepo)
	transactionSvc := transaction.NewService(transactionRepo)
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)

	expandSvc := grid.NewExpandService(expandStore, log)
	gateway := grid.NewGateway(transactionSvc)
	gridSvc := grid.NewService(transactionSvc, taxonomySvc, expandSvc, gateway, log)
	log.Info("Grid service initialized")

	// HTTP handlers
	authHandler := handler.NewAuthHandler(userSvc, jwtSvc)
	transactionHandler := handler.NewTransactionHandler(transactionSvc)
	categoryHandler := handler.NewCategoryHandler(taxonomySvc)
	gridHandler := handler.NewGridHandler(gridSvc)
	healthHandler := handler.NewHealthHandler(db)

	r := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		AuthHandler:        authHandler,
		TransactionHandler: transactionHandler,
		CategoryHandler:    categoryHandler,
		GridHandler:        gridHandler,
		HealthHandler:      healthHandler,
		JWTMiddleware:      middleware.JWTMiddleware(jwtSvc),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
