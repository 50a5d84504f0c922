package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionModel maps the sessions table. RefreshTokenHash is unique: a hash
// identifies exactly one session, and rotation replaces it in place.
type SessionModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;index;not null"`
	RefreshTokenHash string    `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt        time.Time `gorm:"index;not null"`
	RevokedAt        *time.Time
	CreatedAt        time.Time
	LastRefreshedAt  time.Time

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default pluralization.
func (SessionModel) TableName() string {
	return "sessions"
}

// BeforeCreate assigns an ID when the application inserts without one.
func (m *SessionModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
