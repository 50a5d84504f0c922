package usecase

import (
	"context"

	"jukebox/internal/domain/entity"

	"github.com/google/uuid"
)

// TrackInput carries the full metadata for creating a track.
type TrackInput struct {
	Title           string
	Artist          string
	DurationSeconds int
	SourceURL       string
}

// UpdateTrackInput carries the mutable track fields. Nil leaves a field
// unchanged.
type UpdateTrackInput struct {
	Title           *string
	Artist          *string
	DurationSeconds *int
	SourceURL       *string
}

// ListTracksInput carries catalog pagination. Zero values select the
// defaults (limit 50, offset 0); the limit is capped at 200.
type ListTracksInput struct {
	Limit  int
	Offset int
}

// CatalogUsecase defines the contract for track catalog operations. Reads
// are anonymous; writes require an authenticated caller.
type CatalogUsecase interface {
	// CreateTrack adds a track to the catalog.
	CreateTrack(ctx context.Context, callerID uuid.UUID, input *TrackInput) (*entity.Track, error)

	// GetTrack returns a single track.
	GetTrack(ctx context.Context, id uuid.UUID) (*entity.Track, error)

	// ListTracks returns a stable page of the catalog, ordered by creation
	// time then ID.
	ListTracks(ctx context.Context, input *ListTracksInput) ([]*entity.Track, error)

	// UpdateTrack modifies a track's metadata.
	UpdateTrack(ctx context.Context, callerID, id uuid.UUID, input *UpdateTrackInput) (*entity.Track, error)

	// DeleteTrack removes a track and, in the same transaction, every
	// occurrence of it in any playlist, closing the position gaps.
	DeleteTrack(ctx context.Context, callerID, id uuid.UUID) error
}
