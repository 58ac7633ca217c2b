package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Menu is a taxonomy root node. Posts reference menus by slug, not by id, so
// renaming a slug orphans content that still carries the old one.
type Menu struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_menus_slug"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	Index       int       `json:"index" db:"index" gorm:"type:integer;not null;default:0"`
	Status      bool      `json:"status" db:"status" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Submenu is a taxonomy leaf owned by exactly one Menu. The slug is unique
// across the whole submenu set, not just within the parent.
type Submenu struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name           string    `json:"name" db:"name" gorm:"type:text;not null"`
	Slug           string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_submenus_slug"`
	Description    *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	ParentID       uuid.UUID `json:"parent_id" db:"parent_id" gorm:"type:uuid;not null;index:idx_submenus_parent_id"`
	ShowOnHomePage bool      `json:"showOnHomePage" db:"show_on_home_page" gorm:"not null"`
	Status         bool      `json:"status" db:"status" gorm:"not null"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

func (s *Submenu) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// MenuGroup is the listing shape: one menu with its submenus attached.
type MenuGroup struct {
	Menu     Menu      `json:"menu"`
	Submenus []Submenu `json:"submenus"`
}
