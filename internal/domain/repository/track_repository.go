package repository

import (
	"context"

	"jukebox/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrTrackNotFound is returned when no track matches the lookup.
var ErrTrackNotFound = errors.New("track not found")

// ListOptions carries pagination for catalog listings. Ordering is always
// creation time then ID, so repeated pages are stable.
type ListOptions struct {
	Limit  int
	Offset int
}

// TrackRepository defines the operations for catalog persistence.
type TrackRepository interface {
	// Create persists a new track.
	Create(ctx context.Context, track *entity.Track) error

	// FindByID retrieves a single track by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Track, error)

	// List returns tracks ordered by creation time then ID.
	List(ctx context.Context, opts ListOptions) ([]*entity.Track, error)

	// Update modifies an existing track's metadata.
	Update(ctx context.Context, track *entity.Track) error

	// Delete removes a track by ID. Playlist references are removed by the
	// caller within the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
