package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackModel maps the tracks table.
type TrackModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title           string    `gorm:"size:256;not null"`
	Artist          string    `gorm:"size:256;not null"`
	DurationSeconds int       `gorm:"not null"`
	SourceURL       string    `gorm:"size:2048"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName overrides GORM's default pluralization.
func (TrackModel) TableName() string {
	return "tracks"
}

// BeforeCreate assigns an ID when the application inserts without one.
func (m *TrackModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
