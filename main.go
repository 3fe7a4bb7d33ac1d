package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"recruit-api/config"
	"recruit-api/internal/app"
	"recruit-api/internal/database"
	"recruit-api/internal/server"
	"recruit-api/internal/services"
	"recruit-api/internal/storage"
	"recruit-api/internal/storage/memory"
	"recruit-api/internal/storage/postgres"
	"recruit-api/internal/storage/redisstore"

	_ "recruit-api/docs"
)

// @title           Recruit API
// @version         1.0
// @description     Recruitment platform backend: offers, applications, recruiter validation and moderation.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	checks := map[string]func(context.Context) error{}

	// --- Storage ---
	var store *storage.Store
	switch cfg.Storage.Driver {
	case "memory":
		log.Println("Using in-memory storage; data is lost on restart")
		store = memory.New()
	default:
		dbPool, err := database.NewConnectionPool(cfg.DB)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, dbPool); err != nil {
				log.Fatalf("Failed to migrate database: %v", err)
			}
		}
		store = postgres.New(dbPool)
		checks["database"] = dbPool.Ping
	}

	// --- Initialize Redis Client ---
	var cache storage.CacheStore
	if cfg.Redis.Addr != "" {
		redisClient, err := database.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("WARN: %v. Falling back to the in-process cache.", err)
		} else {
			defer redisClient.Close()
			cache = redisstore.New(redisClient)
			checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}
	if cache == nil {
		cache = memory.NewCache()
	}

	application := app.New(cfg, store, cache)
	for name, check := range checks {
		application.Checks[name] = check
	}

	b := cfg.Bootstrap
	if err := services.EnsureSuperAdmin(ctx, application.Deps, b.AdminName, b.AdminEmail, b.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	application.Close()

	log.Println("Application gracefully stopped.")
}
