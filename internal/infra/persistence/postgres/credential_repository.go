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

// credentialRepository implements repository.CredentialRepository using GORM.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// Create persists the credential for a newly registered user.
func (repo *credentialRepository) Create(ctx context.Context, cred *entity.Credential) error {
	credM := &model.CredentialModel{
		UserID:       cred.UserID,
		PasswordHash: cred.PasswordHash,
	}

	if err := repo.db.WithContext(ctx).Create(credM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create credential")
	}

	cred.CreatedAt = credM.CreatedAt
	cred.UpdatedAt = credM.UpdatedAt

	return nil
}

// FindByUserID retrieves the credential for a user.
func (repo *credentialRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error) {
	var credM model.CredentialModel
	if err := repo.db.WithContext(ctx).First(&credM, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.Wrap(err, "failed to find credential")
	}

	return &entity.Credential{
		UserID:       credM.UserID,
		PasswordHash: credM.PasswordHash,
		CreatedAt:    credM.CreatedAt,
		UpdatedAt:    credM.UpdatedAt,
	}, nil
}

// DeleteByUserID removes the credential for a user.
func (repo *credentialRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.CredentialModel{}, "user_id = ?", userID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete credential")
	}

	return nil
}
