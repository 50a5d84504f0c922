// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	deliverycontext "jukebox/internal/delivery/context"
	"jukebox/internal/domain/entity"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/domain/repository"
	"jukebox/internal/domain/service"
	"jukebox/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// handlePattern constrains login handles after normalization.
var handlePattern = regexp.MustCompile(`^[a-z0-9_.-]{3,32}$`)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	credRepo     repository.CredentialRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	CredRepo     repository.CredentialRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		credRepo:     params.CredRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeHandle trims and lowercases a login handle.
func normalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

// Register creates a new account with a unique handle.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	handle := normalizeHandle(input.Handle)
	if !handlePattern.MatchString(handle) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("handle must be 3-32 characters of a-z, 0-9, '_', '.' or '-'")
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	user := &entity.User{
		ID:          uuid.New(),
		Handle:      handle,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Bio:         input.Bio,
	}
	if user.DisplayName == "" {
		user.DisplayName = handle
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrHandleTaken) {
				return domainerrors.ErrHandleTaken
			}

			return errors.Wrap(err, "failed to create user")
		}

		cred := &entity.Credential{UserID: user.ID, PasswordHash: hashedPassword}
		if err := repoFactory.CredentialRepo().Create(ctx, cred); err != nil {
			return errors.Wrap(err, "failed to store credential")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Registered new account", slog.String("handle", handle), slog.Any("userID", user.ID))

	return user, nil
}

// Login verifies credentials and opens a new session.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	handle := normalizeHandle(input.Handle)

	user, err := srv.userRepo.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn a compare so response timing does not reveal whether
			// the handle exists.
			srv.hasher.Check(input.Password, "")

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}

	cred, err := srv.credRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load credential")
	}
	if !srv.hasher.Check(input.Password, cred.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("handle", handle))

		return nil, domainerrors.ErrInvalidCredentials
	}

	sessionID := uuid.New()
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	session := &entity.Session{
		ID:               sessionID,
		UserID:           user.ID,
		RefreshTokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt:        time.Now().UTC().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID), slog.Any("sessionID", sessionID))

	return &usecase.AuthOutput{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

// Refresh rotates the presented refresh token and issues a new pair.
func (srv *userService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	var output *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.SessionRepo()

		// A rotated-away token no longer matches any stored hash, so a
		// replayed refresh fails here.
		session, err := sessionRepo.FindByTokenHash(ctx, srv.tokenService.HashToken(refreshToken))
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to look up session")
		}
		if session.ID != claims.SessionID || !session.Active(time.Now().UTC()) {
			return domainerrors.ErrRefreshTokenInvalid
		}

		accessToken, newRefreshToken, err := srv.tokenService.GenerateTokens(session.UserID, session.ID)
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens")
		}

		now := time.Now().UTC()
		session.RefreshTokenHash = srv.tokenService.HashToken(newRefreshToken)
		session.ExpiresAt = now.Add(srv.tokenService.GetRefreshTokenDuration())
		session.LastRefreshedAt = now
		if err := sessionRepo.Update(ctx, session); err != nil {
			return errors.Wrap(err, "failed to rotate session")
		}

		user, err := repoFactory.UserRepo().FindByID(ctx, session.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load user")
		}
		output = &usecase.AuthOutput{AccessToken: accessToken, RefreshToken: newRefreshToken, User: user}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Refresh token rotated", slog.Any("sessionID", claims.SessionID))

	return output, nil
}

// Logout revokes the session behind the presented refresh token.
func (srv *userService) Logout(ctx context.Context, refreshToken string) error {
	session, err := srv.sessionRepo.FindByTokenHash(ctx, srv.tokenService.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to look up session")
	}
	if session.RevokedAt != nil {
		return nil
	}

	now := time.Now().UTC()
	session.RevokedAt = &now
	if err := srv.sessionRepo.Update(ctx, session); err != nil {
		return errors.Wrap(err, "failed to revoke session")
	}

	srv.log(ctx).Info("Session revoked", slog.Any("sessionID", session.ID))

	return nil
}

// Authenticate resolves a bearer access token to a user ID.
func (srv *userService) Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error) {
	claims, err := srv.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}

	session, err := srv.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return uuid.Nil, domainerrors.ErrUnauthenticated
		}

		return uuid.Nil, errors.Wrap(err, "failed to look up session")
	}
	if session.UserID != claims.UserID || !session.Active(time.Now().UTC()) {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}

	return claims.UserID, nil
}

// GetUser returns a user's public profile.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// UpdateProfile modifies the caller's own profile fields.
func (srv *userService) UpdateProfile(ctx context.Context, id, callerID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if id != callerID {
		return nil, domainerrors.ErrForbidden
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load user")
		}

		if input.DisplayName != nil {
			name := strings.TrimSpace(*input.DisplayName)
			if name == "" {
				return domainerrors.ErrValidationFailed.WithDetails("display name must not be empty")
			}
			user.DisplayName = name
		}
		if input.Bio != nil {
			user.Bio = *input.Bio
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteAccount removes an account and everything it owns.
func (srv *userService) DeleteAccount(ctx context.Context, id, callerID uuid.UUID) error {
	if id != callerID {
		return domainerrors.ErrForbidden
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PlaylistRepo().DeleteByOwner(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete playlists")
		}
		if err := repoFactory.SessionRepo().DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete sessions")
		}
		if err := repoFactory.CredentialRepo().DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete credential")
		}
		if err := repoFactory.UserRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Account deleted", slog.Any("userID", id))

	return nil
}

// SweepExpiredSessions prunes sessions past their expiry.
func (srv *userService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	pruned, err := srv.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to prune expired sessions")
	}
	if pruned > 0 {
		srv.log(ctx).Debug("Pruned expired sessions", slog.Int64("count", pruned))
	}

	return pruned, nil
}
