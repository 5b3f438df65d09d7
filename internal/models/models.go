package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Config is the global server configuration singleton (only one row should exist)
type Config struct {
	BaseModel
	// Auto-generated on first boot (64 hex chars)
	JWTSecret string `json:"-" gorm:"type:varchar(64);not null"`
}

// User represents a registered account
type User struct {
	BaseModel
	Username     string    `json:"username" gorm:"unique;not null"`
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"not null;default:false"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Role returns the wire-level role string derived from the superuser flag
func (u *User) Role() string {
	if u.IsSuperuser {
		return "admin"
	}
	return "user"
}

// Item represents a user-owned item
type Item struct {
	BaseModel
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id" gorm:"not null;index"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Config{},
		&User{},
		&Item{},
	)
}
