package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/example/trmops/internal/config"
	"github.com/example/trmops/internal/database"
	"github.com/example/trmops/internal/handlers"
	"github.com/example/trmops/internal/logging"
	"github.com/example/trmops/internal/middleware"
	"github.com/example/trmops/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	ctx := context.Background()

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Connect(cfg.DatabaseURL, log)
		if err != nil {
			log.WithError(err).Fatal("connect postgres")
		}
		defer func() {
			if err := database.Close(); err != nil {
				log.WithError(err).Warn("close postgres")
			}
		}()
	} else {
		log.Warn("DATABASE_URL not set, using in-memory user directory")
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("connect redis")
		}
		defer func() {
			if err := cache.Close(); err != nil {
				log.WithError(err).Warn("close redis")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))

	if err := routes.Register(app, routes.Deps{
		Config: cfg,
		DB:     db,
		Cache:  cache,
		Logger: log,
	}); err != nil {
		log.WithError(err).Fatal("register routes")
	}

	srvErrCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Address()).Info("starting server")
		srvErrCh <- app.Listen(cfg.Address())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutdown signal received")
	case err := <-srvErrCh:
		if err != nil {
			log.WithError(err).Error("server error")
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error")
		return
	}

	log.Info("server exited cleanly")
}
