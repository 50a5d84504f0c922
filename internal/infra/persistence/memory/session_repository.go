package memory

import (
	"context"
	"time"

	"jukebox/internal/domain/entity"
	"jukebox/internal/domain/repository"

	"github.com/google/uuid"
)

type sessionRepository struct {
	access accessFunc
}

// NewSessionRepository creates a store-backed SessionRepository.
func NewSessionRepository(store *Store) repository.SessionRepository {
	return &sessionRepository{access: storeAccess(store)}
}

func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return repo.access(func(d *data) error {
		ensureID(&session.ID)
		session.CreatedAt = now()
		session.LastRefreshedAt = session.CreatedAt
		d.sessions[session.ID] = cloneSession(session)
		d.sessionsByHash[session.RefreshTokenHash] = session.ID

		return nil
	})
}

func (repo *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var found *entity.Session
	err := repo.access(func(d *data) error {
		session, ok := d.sessions[id]
		if !ok {
			return repository.ErrSessionNotFound
		}
		found = cloneSession(session)

		return nil
	})

	return found, err
}

func (repo *sessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	var found *entity.Session
	err := repo.access(func(d *data) error {
		id, ok := d.sessionsByHash[tokenHash]
		if !ok {
			return repository.ErrSessionNotFound
		}
		found = cloneSession(d.sessions[id])

		return nil
	})

	return found, err
}

func (repo *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	return repo.access(func(d *data) error {
		stored, ok := d.sessions[session.ID]
		if !ok {
			return repository.ErrSessionNotFound
		}
		if stored.RefreshTokenHash != session.RefreshTokenHash {
			delete(d.sessionsByHash, stored.RefreshTokenHash)
			d.sessionsByHash[session.RefreshTokenHash] = session.ID
		}

		session.CreatedAt = stored.CreatedAt
		d.sessions[session.ID] = cloneSession(session)

		return nil
	})
}

func (repo *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return repo.access(func(d *data) error {
		for id, session := range d.sessions {
			if session.UserID == userID {
				delete(d.sessionsByHash, session.RefreshTokenHash)
				delete(d.sessions, id)
			}
		}

		return nil
	})
}

func (repo *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	var pruned int64
	err := repo.access(func(d *data) error {
		cutoff := time.Now().UTC()
		for id, session := range d.sessions {
			if session.ExpiresAt.Before(cutoff) {
				delete(d.sessionsByHash, session.RefreshTokenHash)
				delete(d.sessions, id)
				pruned++
			}
		}

		return nil
	})

	return pruned, err
}
