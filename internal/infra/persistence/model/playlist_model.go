package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaylistModel maps the playlists table.
type PlaylistModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:256;not null"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Owner *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	// Entries are always loaded and written as a whole, ordered by Position.
	Entries []*PlaylistEntryModel `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default pluralization.
func (PlaylistModel) TableName() string {
	return "playlists"
}

// BeforeCreate assigns an ID when the application inserts without one.
func (m *PlaylistModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// PlaylistEntryModel maps the playlist_tracks table. One row per position;
// positions are contiguous from zero within a playlist. The same track may
// appear at several positions.
type PlaylistEntryModel struct {
	PlaylistID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey"`
	TrackID    uuid.UUID `gorm:"type:uuid;index;not null"`

	Track *TrackModel `gorm:"foreignKey:TrackID;constraint:OnDelete:RESTRICT"`
}

// TableName overrides GORM's default pluralization.
func (PlaylistEntryModel) TableName() string {
	return "playlist_tracks"
}
