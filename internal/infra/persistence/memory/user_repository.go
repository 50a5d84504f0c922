package memory

import (
	"context"

	"jukebox/internal/domain/entity"
	"jukebox/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	access accessFunc
}

// NewUserRepository creates a store-backed UserRepository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{access: storeAccess(store)}
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var found *entity.User
	err := repo.access(func(d *data) error {
		user, ok := d.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = cloneUser(user)

		return nil
	})

	return found, err
}

func (repo *userRepository) FindByHandle(ctx context.Context, handle string) (*entity.User, error) {
	var found *entity.User
	err := repo.access(func(d *data) error {
		id, ok := d.usersByHandle[handle]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = cloneUser(d.users[id])

		return nil
	})

	return found, err
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	return repo.access(func(d *data) error {
		if _, taken := d.usersByHandle[user.Handle]; taken {
			return repository.ErrHandleTaken
		}

		ensureID(&user.ID)
		user.CreatedAt = now()
		user.UpdatedAt = user.CreatedAt
		d.users[user.ID] = cloneUser(user)
		d.usersByHandle[user.Handle] = user.ID

		return nil
	})
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	return repo.access(func(d *data) error {
		stored, ok := d.users[user.ID]
		if !ok {
			return repository.ErrUserNotFound
		}
		if stored.Handle != user.Handle {
			if _, taken := d.usersByHandle[user.Handle]; taken {
				return repository.ErrHandleTaken
			}
			delete(d.usersByHandle, stored.Handle)
			d.usersByHandle[user.Handle] = user.ID
		}

		user.CreatedAt = stored.CreatedAt
		user.UpdatedAt = now()
		d.users[user.ID] = cloneUser(user)

		return nil
	})
}

func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.access(func(d *data) error {
		stored, ok := d.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		delete(d.usersByHandle, stored.Handle)
		delete(d.users, id)

		return nil
	})
}

type credentialRepository struct {
	access accessFunc
}

// NewCredentialRepository creates a store-backed CredentialRepository.
func NewCredentialRepository(store *Store) repository.CredentialRepository {
	return &credentialRepository{access: storeAccess(store)}
}

func (repo *credentialRepository) Create(ctx context.Context, cred *entity.Credential) error {
	return repo.access(func(d *data) error {
		cred.CreatedAt = now()
		cred.UpdatedAt = cred.CreatedAt
		d.credentials[cred.UserID] = cloneCredential(cred)

		return nil
	})
}

func (repo *credentialRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error) {
	var found *entity.Credential
	err := repo.access(func(d *data) error {
		cred, ok := d.credentials[userID]
		if !ok {
			return repository.ErrCredentialNotFound
		}
		found = cloneCredential(cred)

		return nil
	})

	return found, err
}

func (repo *credentialRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return repo.access(func(d *data) error {
		delete(d.credentials, userID)

		return nil
	})
}
