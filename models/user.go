package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleAuthor UserRole = "author"
	RoleUser   UserRole = "user"
)

// User represents a site identity: a reader account, an author profile or an
// admin. Email is optional (author profiles created by admins may not have a
// login) but unique whenever present.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email        *string   `json:"email,omitempty" db:"email" gorm:"type:text;uniqueIndex:idx_users_email"`
	PasswordHash *string   `json:"-" db:"password" gorm:"type:text;column:password"`
	Role         UserRole  `json:"role" db:"role" gorm:"type:text;not null"`
	Education    *string   `json:"education,omitempty" db:"education" gorm:"type:text"`
	Address      *string   `json:"address,omitempty" db:"address" gorm:"type:text"`
	Instagram    *string   `json:"instagram,omitempty" db:"instagram" gorm:"type:text"`
	Linkedin     *string   `json:"linkedin,omitempty" db:"linkedin" gorm:"type:text"`
	Description  *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	Image        *string   `json:"image,omitempty" db:"image" gorm:"type:text"`
	Index        int       `json:"index" db:"index" gorm:"type:integer;not null;default:0"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
