package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"jukebox/config"
	"jukebox/internal/domain/entity"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/domain/service"
	"jukebox/internal/errors"
	"jukebox/internal/infra/auth"
	"jukebox/internal/infra/persistence/memory"
	"jukebox/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testEnv wires the three services over one in-memory store, with real
// bcrypt (minimum cost, for speed) and real JWT services.
type testEnv struct {
	store     *memory.Store
	users     usecase.UserUsecase
	catalog   usecase.CatalogUsecase
	playlists usecase.PlaylistUsecase
	tokens    service.TokenService
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Auth = &config.AuthConfig{
		BcryptCost:      4,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	cfg.PasswordStrength = &config.PasswordStrengthConfig{MinLength: 8, MaxLength: 72}

	return cfg
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := newTestConfig()
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(cfg)

	store := memory.New()
	txManager := memory.NewTransactionManager(store)
	userRepo := memory.NewUserRepository(store)
	credRepo := memory.NewCredentialRepository(store)
	sessionRepo := memory.NewSessionRepository(store)
	trackRepo := memory.NewTrackRepository(store)
	playlistRepo := memory.NewPlaylistRepository(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		store: store,
		users: NewUserService(UserServiceParams{
			TxManager:    txManager,
			UserRepo:     userRepo,
			CredRepo:     credRepo,
			SessionRepo:  sessionRepo,
			Hasher:       hasher,
			TokenService: tokenService,
			Logger:       logger,
		}),
		catalog: NewCatalogService(CatalogServiceParams{
			TxManager: txManager,
			TrackRepo: trackRepo,
			Logger:    logger,
		}),
		playlists: NewPlaylistService(PlaylistServiceParams{
			TxManager:    txManager,
			PlaylistRepo: playlistRepo,
			UserRepo:     userRepo,
			Logger:       logger,
		}),
		tokens: tokenService,
	}
}

// registerAndLogin creates an account and opens a session for it.
func registerAndLogin(t *testing.T, env *testEnv, handle string) (*entity.User, *usecase.AuthOutput) {
	t.Helper()

	ctx := context.Background()
	user, err := env.users.Register(ctx, &usecase.RegisterInput{
		Handle:      handle,
		Password:    "correct horse battery",
		DisplayName: handle,
	})
	require.NoError(t, err)

	out, err := env.users.Login(ctx, &usecase.LoginInput{Handle: handle, Password: "correct horse battery"})
	require.NoError(t, err)

	return user, out
}

// createTrack adds a catalog track for tests that need one.
func createTrack(t *testing.T, env *testEnv, callerID uuid.UUID, title string) *entity.Track {
	t.Helper()

	track, err := env.catalog.CreateTrack(context.Background(), callerID, &usecase.TrackInput{
		Title:           title,
		Artist:          "Test Artist",
		DurationSeconds: 180,
		SourceURL:       "https://cdn.example.com/" + title + ".flac",
	})
	require.NoError(t, err)

	return track
}

// requireErrorCode asserts that err carries the given business error code.
func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got: %v", err)
	require.Equal(t, code, appErr.ErrorCode())
}
