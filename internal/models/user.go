package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a team member account. firstName/lastName casing in JSON matches
// what the dashboard reads; request bodies use snake_case (see users DTOs).
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string         `gorm:"column:first_name;not null" json:"firstName"`
	LastName     string         `gorm:"column:last_name;not null" json:"lastName"`
	Role         string         `gorm:"column:role;not null;default:team_member" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
