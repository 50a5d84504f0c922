package entity

import (
	"time"

	"github.com/google/uuid"
)

// Track is a catalog entry. Tracks are independent of users and playlists;
// SourceURL points at the audio content, which this service never stores.
type Track struct {
	ID              uuid.UUID // The unique identifier for the track.
	Title           string    // The track title. Required, no uniqueness constraint.
	Artist          string    // The performing artist. Required, no uniqueness constraint.
	DurationSeconds int       // Track length in whole seconds. Always positive.
	SourceURL       string    // Reference to the audio content. Opaque to this service.
	CreatedAt       time.Time // Timestamp of when the track was added to the catalog.
	UpdatedAt       time.Time // Timestamp of the last metadata change.
}
