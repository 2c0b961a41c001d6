package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"gwp-backend/internal/config"
	"gwp-backend/internal/metrics"
	"gwp-backend/internal/models"
	"gwp-backend/internal/repository"
	"gwp-backend/internal/router"
	"gwp-backend/internal/service"
	"gwp-backend/internal/session"
	"gwp-backend/internal/storage"
	"gwp-backend/pkg/limiter"
)

const shutdownTimeout = 10 * time.Second

func runServe(configFile string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(&cfg.Log)

	db, err := models.InitDB(&cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := models.Close(db); err != nil {
			logger.WithError(err).Warn("close database")
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	sessions, err := session.New(&cfg.Session)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	if closer, ok := sessions.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	files, err := storage.New(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("file store: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	authService := service.NewAuthService(repository.NewUserRepository(db), sessions, &cfg.Auth, logger)
	if err := authService.InitAdmin(ctx); err != nil {
		logger.WithError(err).Warn("bootstrap account not created")
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m, err = metrics.New(sessions)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	uploads := newUploadLimiter(cfg)
	if closer, ok := uploads.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	engine := router.SetupRouter(cfg, router.Deps{
		Logger:   logger,
		DB:       db,
		Sessions: sessions,
		Files:    files,
		Metrics:  m,
		Uploads:  uploads,
	})

	srv := &http.Server{
		Addr:              cfg.Server.GetAddress(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fields := logrus.Fields{
			"addr":     srv.Addr,
			"driver":   cfg.Database.Driver,
			"sessions": cfg.Session.Backend,
			"storage":  cfg.Storage.Provider,
		}
		if cert, key, ok := cfg.Server.TLSFiles(); ok {
			logger.WithFields(fields).Info("server listening with TLS")
			errCh <- srv.ListenAndServeTLS(cert, key)
			return
		}
		logger.WithFields(fields).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMigrate(configFile string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(&cfg.Log)

	db, err := models.InitDB(&cfg.Database, logger)
	if err != nil {
		return err
	}
	defer models.Close(db)

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.WithField("driver", cfg.Database.Driver).Info("schema up to date")
	return nil
}

// newUploadLimiter shares upload slots through redis when sessions already
// live there, and keeps them in memory otherwise.
func newUploadLimiter(cfg *config.Config) limiter.Limiter {
	slots := cfg.Storage.MaxConcurrentUploads
	if slots <= 0 {
		return nil
	}
	if cfg.Session.Backend != "redis" {
		return limiter.NewLocalLimiter(slots)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Session.Redis.GetAddress(),
		DB:       cfg.Session.Redis.DB,
		Password: cfg.Session.Redis.Password,
	})
	return limiter.NewRedisLimiter(client, slots, "gwp:uploads:", 10*time.Minute)
}
