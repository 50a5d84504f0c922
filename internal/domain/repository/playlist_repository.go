package repository

import (
	"context"

	"jukebox/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrPlaylistNotFound is returned when no playlist matches the lookup.
var ErrPlaylistNotFound = errors.New("playlist not found")

// PlaylistRepository defines the operations for playlist persistence,
// including the ordered track membership.
type PlaylistRepository interface {
	// Create persists a new, empty playlist.
	Create(ctx context.Context, playlist *entity.Playlist) error

	// FindByID retrieves a playlist with its ordered membership.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error)

	// FindByIDForUpdate retrieves a playlist and locks it for the duration of
	// the surrounding transaction, serializing concurrent membership edits.
	// Outside a transaction it behaves like FindByID.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Playlist, error)

	// ListByOwner returns a user's playlists ordered by creation time then ID.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error)

	// Update persists the playlist's name and full membership order.
	Update(ctx context.Context, playlist *entity.Playlist) error

	// Delete removes a playlist and its membership rows.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByOwner removes every playlist owned by a user.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error

	// RemoveTrackEverywhere deletes all occurrences of trackID from every
	// playlist, closing position gaps. Used by the catalog's delete cascade.
	// Returns the IDs of the playlists that were modified.
	RemoveTrackEverywhere(ctx context.Context, trackID uuid.UUID) ([]uuid.UUID, error)
}
