package postgres

import (
	"context"

	"jukebox/internal/domain/entity"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/domain/repository"
	"jukebox/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements repository.SessionRepository using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session, representing one login.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByID retrieves a session by its unique ID.
func (repo *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).First(&sessionM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by id")
	}

	return toSessionDomain(&sessionM), nil
}

// FindByTokenHash retrieves a session by the hash of its current refresh token.
func (repo *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).First(&sessionM, "refresh_token_hash = ?", tokenHash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by token hash")
	}

	return toSessionDomain(&sessionM), nil
}

// Update persists changes to a session (rotation, revocation).
func (repo *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Save(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update session")
	}

	return nil
}

// DeleteByUserID removes every session belonging to a user.
func (repo *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.SessionModel{}, "user_id = ?", userID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete sessions")
	}

	return nil
}

// DeleteExpired prunes sessions whose expiry has passed.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < NOW()").
		Delete(&model.SessionModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to prune expired sessions")
	}

	return result.RowsAffected, nil
}

// --- Mapper functions ---

func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:               data.ID,
		UserID:           data.UserID,
		RefreshTokenHash: data.RefreshTokenHash,
		ExpiresAt:        data.ExpiresAt,
		RevokedAt:        data.RevokedAt,
		CreatedAt:        data.CreatedAt,
		LastRefreshedAt:  data.LastRefreshedAt,
	}
}

func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:               data.ID,
		UserID:           data.UserID,
		RefreshTokenHash: data.RefreshTokenHash,
		ExpiresAt:        data.ExpiresAt,
		RevokedAt:        data.RevokedAt,
		CreatedAt:        data.CreatedAt,
		LastRefreshedAt:  data.LastRefreshedAt,
	}
}
