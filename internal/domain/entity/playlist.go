package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Playlist is an ordered sequence of track references owned by exactly one
// user. Ownership never changes after creation. TrackIDs is positional:
// index 0 plays first, and the same track may appear more than once.
type Playlist struct {
	ID        uuid.UUID   // The unique identifier for the playlist.
	Name      string      // The playlist name. Required, mutable by the owner.
	OwnerID   uuid.UUID   // The user that owns this playlist. Immutable.
	TrackIDs  []uuid.UUID // Ordered track membership. Positions are contiguous from zero.
	CreatedAt time.Time   // Timestamp of when the playlist was created.
	UpdatedAt time.Time   // Timestamp of the last change to name or membership.
}

// InsertTrack inserts trackID at the given position, shifting later entries.
// Positions outside [0, len] are clamped to the nearest end, so an
// out-of-range insert degrades to an append instead of failing.
func (p *Playlist) InsertTrack(trackID uuid.UUID, position int) {
	if position < 0 {
		position = 0
	}
	if position > len(p.TrackIDs) {
		position = len(p.TrackIDs)
	}
	p.TrackIDs = slices.Insert(p.TrackIDs, position, trackID)
}

// RemoveAt removes the entry at position, closing the gap. It reports false
// when position is out of range.
func (p *Playlist) RemoveAt(position int) bool {
	if position < 0 || position >= len(p.TrackIDs) {
		return false
	}
	p.TrackIDs = slices.Delete(p.TrackIDs, position, position+1)

	return true
}

// IndexOf returns the position of the first occurrence of trackID, or -1.
func (p *Playlist) IndexOf(trackID uuid.UUID) int {
	return slices.Index(p.TrackIDs, trackID)
}

// IsPermutation reports whether newOrder contains exactly the current
// membership as a multiset. Duplicate entries must appear the same number of
// times on both sides.
func (p *Playlist) IsPermutation(newOrder []uuid.UUID) bool {
	if len(newOrder) != len(p.TrackIDs) {
		return false
	}

	counts := make(map[uuid.UUID]int, len(p.TrackIDs))
	for _, id := range p.TrackIDs {
		counts[id]++
	}
	for _, id := range newOrder {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}

	return true
}
