package memory

import (
	"context"

	"jukebox/internal/domain/repository"
)

// memTransactionManager implements repository.TransactionManager for the
// in-memory store. Execute holds the store lock for the whole transaction,
// which serializes concurrent edits the same way row locks do on postgres.
type memTransactionManager struct {
	store *Store
}

// NewTransactionManager creates a TransactionManager backed by the store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &memTransactionManager{store: store}
}

// Execute runs fn against a deep copy of the store state. The copy is
// swapped in only when fn succeeds, so partial writes never become visible.
func (tm *memTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	txData := tm.store.data.clone()
	if err := fn(&memRepositoryFactory{data: txData}); err != nil {
		return err
	}

	tm.store.data = txData

	return nil
}

// memRepositoryFactory hands out repositories bound to one transaction's
// working copy.
type memRepositoryFactory struct {
	data *data
}

// UserRepo returns a UserRepository bound to the current transaction.
func (f *memRepositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{access: txAccess(f.data)}
}

// CredentialRepo returns a CredentialRepository bound to the current transaction.
func (f *memRepositoryFactory) CredentialRepo() repository.CredentialRepository {
	return &credentialRepository{access: txAccess(f.data)}
}

// SessionRepo returns a SessionRepository bound to the current transaction.
func (f *memRepositoryFactory) SessionRepo() repository.SessionRepository {
	return &sessionRepository{access: txAccess(f.data)}
}

// TrackRepo returns a TrackRepository bound to the current transaction.
func (f *memRepositoryFactory) TrackRepo() repository.TrackRepository {
	return &trackRepository{access: txAccess(f.data)}
}

// PlaylistRepo returns a PlaylistRepository bound to the current transaction.
func (f *memRepositoryFactory) PlaylistRepo() repository.PlaylistRepository {
	return &playlistRepository{access: txAccess(f.data)}
}

// accessFunc runs a repository operation against the right data set: the
// transaction's working copy, or the live store under its lock.
type accessFunc func(fn func(d *data) error) error

func txAccess(d *data) accessFunc {
	return func(fn func(dd *data) error) error {
		return fn(d)
	}
}

func storeAccess(s *Store) accessFunc {
	return s.view
}
