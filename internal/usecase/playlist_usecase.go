package usecase

import (
	"context"

	"jukebox/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdatePlaylistInput carries a rename and/or a reorder. Nil leaves the
// field unchanged. TrackIDs, when set, must be an exact permutation of the
// playlist's current membership.
type UpdatePlaylistInput struct {
	Name     *string
	TrackIDs []uuid.UUID
}

// AddTrackInput identifies the track to insert and where. A nil Position
// appends; out-of-range positions are clamped to the nearest end.
type AddTrackInput struct {
	TrackID  uuid.UUID
	Position *int
}

// RemoveTrackInput identifies the occurrence to remove. With a Position the
// slot must hold TrackID; without, the first occurrence is removed.
type RemoveTrackInput struct {
	TrackID  uuid.UUID
	Position *int
}

// PlaylistUsecase defines the contract for playlist operations. Reads are
// open to any authenticated user; mutations are owner-only.
type PlaylistUsecase interface {
	// Create makes a new, empty playlist owned by the caller.
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*entity.Playlist, error)

	// Get returns a playlist with its ordered membership.
	Get(ctx context.Context, callerID, id uuid.UUID) (*entity.Playlist, error)

	// ListForUser returns a user's playlists ordered by creation time then ID.
	ListForUser(ctx context.Context, callerID, ownerID uuid.UUID) ([]*entity.Playlist, error)

	// Update renames and/or reorders a playlist. A reorder that is not a
	// permutation of the current membership fails and changes nothing.
	Update(ctx context.Context, callerID, id uuid.UUID, input *UpdatePlaylistInput) (*entity.Playlist, error)

	// Delete removes a playlist and its membership.
	Delete(ctx context.Context, callerID, id uuid.UUID) error

	// AddTrack inserts a track reference. The track must exist at the
	// moment of insertion; duplicates are allowed.
	AddTrack(ctx context.Context, callerID, id uuid.UUID, input *AddTrackInput) (*entity.Playlist, error)

	// RemoveTrack removes one occurrence of a track reference.
	RemoveTrack(ctx context.Context, callerID, id uuid.UUID, input *RemoveTrackInput) (*entity.Playlist, error)
}
