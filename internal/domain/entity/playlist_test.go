package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPlaylist_InsertTrack_Clamping(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	p := &Playlist{}
	p.InsertTrack(a, 0)
	p.InsertTrack(b, 99)
	p.InsertTrack(c, -7)

	assert.Equal(t, []uuid.UUID{c, a, b}, p.TrackIDs)
}

func TestPlaylist_RemoveAt(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	p := &Playlist{TrackIDs: []uuid.UUID{a, b}}

	assert.False(t, p.RemoveAt(-1))
	assert.False(t, p.RemoveAt(2))
	assert.True(t, p.RemoveAt(0))
	assert.Equal(t, []uuid.UUID{b}, p.TrackIDs)
}

func TestPlaylist_IndexOf(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	p := &Playlist{TrackIDs: []uuid.UUID{a, b, a}}

	assert.Equal(t, 0, p.IndexOf(a))
	assert.Equal(t, 1, p.IndexOf(b))
	assert.Equal(t, -1, p.IndexOf(uuid.New()))
}

func TestPlaylist_IsPermutation(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	p := &Playlist{TrackIDs: []uuid.UUID{a, a, b}}

	tests := []struct {
		name  string
		order []uuid.UUID
		want  bool
	}{
		{"identity", []uuid.UUID{a, a, b}, true},
		{"reordered", []uuid.UUID{b, a, a}, true},
		{"wrong length", []uuid.UUID{a, b}, false},
		{"wrong multiplicity", []uuid.UUID{a, b, b}, false},
		{"foreign id", []uuid.UUID{a, a, uuid.New()}, false},
		{"empty against non-empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsPermutation(tt.order))
		})
	}
}

func TestPlaylist_IsPermutation_Empty(t *testing.T) {
	p := &Playlist{}
	assert.True(t, p.IsPermutation(nil))
	assert.True(t, p.IsPermutation([]uuid.UUID{}))
}
