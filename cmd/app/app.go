package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blwclub/membership-portal/internal/api"
	"github.com/blwclub/membership-portal/internal/config"
	"github.com/blwclub/membership-portal/internal/db"
	"github.com/blwclub/membership-portal/internal/logger"
	"github.com/blwclub/membership-portal/internal/scheduler"
	"github.com/blwclub/membership-portal/internal/session"
)

const shutdownTimeout = 10 * time.Second

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, expiring, err := openSessionBackend(ctx, conf.Session)
	if err != nil {
		return fmt.Errorf("failed to initialize sessions -> %w", err)
	}

	s, err := api.NewServer(conf, postgresDB, backend)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	if conf.API.SeedDemoUsers {
		if err = s.Auth.SeedDemoUsers(ctx); err != nil {
			return fmt.Errorf("failed to seed demo users -> %w", err)
		}
	}

	jobs, err := scheduler.NewScheduler(conf.Session.PurgeSchedule, expiring, s.LoginLimiter)
	if err != nil {
		return fmt.Errorf("failed to initialize scheduler -> %w", err)
	}
	jobs.Start()
	defer jobs.Stop()

	go s.Feed.Run(ctx)

	addr := ":" + s.Config.API.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err = <-errCh:
		return fmt.Errorf("failed to start the server -> %w", err)
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}

// openSessionBackend also returns the backend as a scheduler.ExpiringStore
// when it needs periodic purging.
func openSessionBackend(ctx context.Context, conf *config.SessionConfig) (session.Backend, scheduler.ExpiringStore, error) {
	if conf.Driver == config.SessionDriverRedis {
		client, err := session.OpenRedis(ctx, conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		zap.L().Info("using redis session backend", zap.String("addr", conf.Redis.Addr))

		return session.NewRedisBackend(client), nil, nil
	}

	backend := session.NewMemoryBackend()
	zap.L().Info("using in-memory session backend")

	return backend, backend, nil
}
