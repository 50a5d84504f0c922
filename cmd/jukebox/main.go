package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"jukebox/config"
	"jukebox/internal/delivery"
	"jukebox/internal/delivery/http"
	"jukebox/internal/delivery/http/middleware"
	"jukebox/internal/delivery/http/router/handler"
	"jukebox/internal/domain/repository"
	"jukebox/internal/errors"
	"jukebox/internal/infra/auth"
	logs "jukebox/internal/infra/log"
	"jukebox/internal/infra/persistence/memory"
	"jukebox/internal/infra/persistence/postgres"
	"jukebox/internal/usecase"
	"jukebox/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startSessionSweeper,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

type persistenceParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type persistenceResult struct {
	fx.Out

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	CredRepo     repository.CredentialRepository
	SessionRepo  repository.SessionRepository
	TrackRepo    repository.TrackRepository
	PlaylistRepo repository.PlaylistRepository
}

// newPersistence selects the storage backend from database.driver.
func newPersistence(params persistenceParams) (persistenceResult, error) {
	switch params.Config.Database.Driver {
	case "postgres":
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return persistenceResult{}, err
		}

		return persistenceResult{
			TxManager:    postgres.NewTransactionManager(db),
			UserRepo:     postgres.NewUserRepository(db),
			CredRepo:     postgres.NewCredentialRepository(db),
			SessionRepo:  postgres.NewSessionRepository(db),
			TrackRepo:    postgres.NewTrackRepository(db),
			PlaylistRepo: postgres.NewPlaylistRepository(db),
		}, nil

	case "", "memory":
		store := memory.New()
		params.Logger.Warn("Using in-memory storage, data will not survive a restart")

		return persistenceResult{
			TxManager:    memory.NewTransactionManager(store),
			UserRepo:     memory.NewUserRepository(store),
			CredRepo:     memory.NewCredentialRepository(store),
			SessionRepo:  memory.NewSessionRepository(store),
			TrackRepo:    memory.NewTrackRepository(store),
			PlaylistRepo: memory.NewPlaylistRepository(store),
		}, nil

	default:
		return persistenceResult{}, errors.Errorf("unknown database driver %q", params.Config.Database.Driver)
	}
}

func injectRepo() fx.Option {
	return fx.Provide(
		newPersistence,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewBcryptHasher,
		auth.NewJWTService,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewUserService,
		impl.NewCatalogService,
		impl.NewPlaylistService,
	)
}

func injectMiddleware() fx.Option {
	return fx.Provide(
		middleware.NewAuthMiddleware,
		middleware.NewErrorMiddleware,
		middleware.NewRequestIDMiddleware,
		middleware.NewRateLimitMiddleware,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewAuthHandler,
		handler.NewUserHandler,
		handler.NewTrackHandler,
		handler.NewPlaylistHandler,
		handler.NewHealthHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			http.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

// startSessionSweeper runs the periodic expired-session prune. Disabled by
// a zero auth.sessionSweepInterval.
func startSessionSweeper(lc fx.Lifecycle, cfg *config.Config, users usecase.UserUsecase, logger *slog.Logger) {
	if cfg.Auth == nil || cfg.Auth.SessionSweepInterval <= 0 {
		return
	}
	interval := cfg.Auth.SessionSweepInterval

	sweepCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-sweepCtx.Done():
						return
					case <-ticker.C:
						if _, err := users.SweepExpiredSessions(sweepCtx); err != nil {
							logger.Error("Session sweep failed", slog.Any("error", err))
						}
					}
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
