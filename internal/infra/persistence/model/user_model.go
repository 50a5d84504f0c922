// Package model contains the GORM persistence models. They mirror the
// domain entities but carry storage concerns (table names, constraints),
// keeping the entities free of GORM tags.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel maps the users table.
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Handle      string    `gorm:"size:32;uniqueIndex;not null"`
	DisplayName string    `gorm:"size:128;not null"`
	Bio         string    `gorm:"size:1024"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns an ID when the application inserts without one, so
// the memory of the generated value is available to the caller immediately.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// CredentialModel maps the credentials table, one row per user.
type CredentialModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PasswordHash string    `gorm:"size:128;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default pluralization.
func (CredentialModel) TableName() string {
	return "credentials"
}
