package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpapp "github.com/14kear/online_polls/internal/app/http"
	"github.com/14kear/online_polls/internal/config"
	"github.com/14kear/online_polls/internal/handlers"
	"github.com/14kear/online_polls/internal/middleware"
	"github.com/14kear/online_polls/internal/services/auth"
	"github.com/14kear/online_polls/internal/services/polls"
	"github.com/14kear/online_polls/internal/storage/redis"
	"github.com/14kear/online_polls/internal/storage/sqlstore"
)

type App struct {
	HTTPServer *httpapp.App
	Auth       *auth.Auth
	Polls      *polls.Polls
	storage    *sqlstore.Storage
	sessions   *redis.SessionStorage
}

func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.NewApp"

	if cfg.Storage.AutoMigrate {
		if err := sqlstore.Migrate(cfg.Storage.Driver, cfg.Storage.DSN); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("migrations applied", slog.String("driver", cfg.Storage.Driver))
	}

	storage, err := sqlstore.New(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sessions, err := redis.New(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authService := auth.NewAuth(
		log,
		storage,
		storage,
		storage,
		sessions,
		cfg.Auth.Secret,
		cfg.Auth.TokenTTL,
		cfg.Auth.DefaultPermissions,
	)

	pollsService := polls.New(log, storage, storage, storage, storage, authService, polls.Settings{
		PageSize:     cfg.Polls.PageSize,
		MinePageSize: cfg.Polls.MinePageSize,
		MinChoices:   cfg.Polls.MinChoices,
	})

	authMiddleware := middleware.NewAuthMiddleware(authService, cfg.Auth.CookieName, "/login")

	httpApp := httpapp.NewApp(
		log,
		cfg.HTTP,
		handlers.NewAccountsHandler(log, authService, cfg.Auth.CookieName, cfg.Auth.TokenTTL),
		handlers.NewPollsHandler(log, pollsService),
		authMiddleware,
	)

	return &App{
		HTTPServer: httpApp,
		Auth:       authService,
		Polls:      pollsService,
		storage:    storage,
		sessions:   sessions,
	}, nil
}

func (a *App) Stop(ctx context.Context) error {
	return errors.Join(
		a.HTTPServer.Stop(ctx),
		a.sessions.Close(),
		a.storage.Close(),
	)
}
