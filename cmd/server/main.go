package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iipratte/stuber/internal/config"
	"github.com/iipratte/stuber/internal/directory"
	"github.com/iipratte/stuber/internal/events"
	httpapi "github.com/iipratte/stuber/internal/http"
	"github.com/iipratte/stuber/internal/logging"
	"github.com/iipratte/stuber/internal/market"
	"github.com/iipratte/stuber/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// .env is optional; plain environment variables win anyway.
		slog.Info("no .env file found, using environment")
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := storage.Open(cfg.DSN())
	if err != nil {
		if db == nil {
			logger.Error("opening database failed", "error", err)
			os.Exit(1)
		}
		logger.Warn("database unreachable at startup; user requests will fail until it recovers", "error", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if b, err := os.ReadFile(filepath.Join("migrations", "001_create_users.sql")); err == nil {
			if _, err := db.Exec(string(b)); err != nil {
				logger.Error("migration exec error", "error", err)
			} else {
				logger.Info("migration applied", "file", "001_create_users.sql")
			}
		} else {
			logger.Error("migration read error", "error", err)
		}
	}

	var userStore storage.UserStore = storage.NewPostgresStore(db)
	if cfg.RedisAddr != "" {
		cache := storage.NewRedisCache(userStore, cfg.RedisAddr, cfg.RedisPassword, cfg.UserCacheTTL)
		defer cache.Close()
		userStore = cache
		logger.Info("user store cache enabled", "redis_addr", cfg.RedisAddr, "ttl", cfg.UserCacheTTL)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
		logger.Info("booking events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	store := market.New(market.Options{
		ConfirmDelay: cfg.ConfirmDelay,
		Publisher:    publisher,
		Logger:       logger,
	})
	defer store.Close()

	dir := directory.NewService(userStore, logger)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewServer(dir, store, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
