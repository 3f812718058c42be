package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gauchoeats/gaucho/internal/config"
	"github.com/gauchoeats/gaucho/internal/handlers"
	"github.com/gauchoeats/gaucho/internal/recommend"
	"github.com/gauchoeats/gaucho/internal/repository"
	"github.com/gauchoeats/gaucho/internal/service"
	"github.com/gauchoeats/gaucho/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	migrateOnly := len(os.Args) > 1 && os.Args[1] == "migrate"

	log.Info("starting gaucho dining api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"storage", cfg.Storage.Driver,
		"log_level", cfg.LogLevel,
	)

	// Initialize storage
	ctx := context.Background()
	store, db, closeStore, err := openStore(ctx, cfg, migrateOnly, log)
	if err != nil {
		log.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	if migrateOnly {
		log.Info("migrations applied")
		return
	}

	// Initialize services
	diningService := service.NewDiningService(store, newRecommender(cfg, log), cfg.Recommend.MaxDailyQueries, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log, db)
	diningHandler := handlers.NewDiningHandler(diningService, log)

	router := handlers.NewRouter(cfg, diningHandler, healthHandler, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStore selects the configured storage. The returned Pinger is nil for in-memory storage.
func openStore(ctx context.Context, cfg *config.Config, migrate bool, log *slog.Logger) (repository.Store, handlers.Pinger, func(), error) {
	if cfg.Storage.Driver == config.StorageMemory {
		if migrate {
			return nil, nil, func() {}, fmt.Errorf("migrate requires STORAGE=%s", config.StoragePostgres)
		}
		log.Info("using in-memory storage with seed data")
		return repository.NewInMemoryStore(), nil, func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pg, err := repository.NewPostgresStore(connectCtx, cfg.Storage.DB.DSN())
	if err != nil {
		return nil, nil, func() {}, err
	}

	if migrate || cfg.Storage.AutoMigrate {
		if err := pg.Migrate(ctx, log); err != nil {
			pg.Close()
			return nil, nil, func() {}, err
		}
	}

	log.Info("connected to postgres")
	return pg, pg, pg.Close, nil
}

func newRecommender(cfg *config.Config, log *slog.Logger) recommend.Recommender {
	if cfg.Recommend.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY not set, using keyword recommender")
		return recommend.NewKeyword(recommend.DefaultLimit)
	}
	log.Info("using openai recommender", "model", cfg.Recommend.Model)
	return recommend.NewOpenAI(cfg.Recommend.OpenAIKey, cfg.Recommend.Model, "")
}
