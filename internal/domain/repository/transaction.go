package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to group operations atomically without
// depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// Otherwise, it's committed. All repository operations obtained from the
	// factory use the same underlying transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// CredentialRepo returns a CredentialRepository bound to the current transaction.
	CredentialRepo() CredentialRepository

	// SessionRepo returns a SessionRepository bound to the current transaction.
	SessionRepo() SessionRepository

	// TrackRepo returns a TrackRepository bound to the current transaction.
	TrackRepo() TrackRepository

	// PlaylistRepo returns a PlaylistRepository bound to the current transaction.
	PlaylistRepo() PlaylistRepository
}
