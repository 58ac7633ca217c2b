package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Linkedin  string `json:"linkedin"`
}

type SEOMeta struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
}

// Settings holds the site-wide configuration document. The store keeps at
// most one row in practice; Get returns the first one found.
type Settings struct {
	ID              uuid.UUID                          `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	SiteName        string                             `json:"siteName" db:"site_name" gorm:"type:text;not null"`
	SiteDescription string                             `json:"siteDescription" db:"site_description" gorm:"type:text;not null"`
	Logo            *string                            `json:"logo,omitempty" db:"logo" gorm:"type:text"`
	Favicon         *string                            `json:"favicon,omitempty" db:"favicon" gorm:"type:text"`
	Contact         datatypes.JSONType[ContactInfo]    `json:"contact" db:"contact"`
	Social          datatypes.JSONType[SocialLinks]    `json:"social" db:"social"`
	SEO             datatypes.JSONType[SEOMeta]        `json:"seo" db:"seo" gorm:"column:seo"`
	Theme           string                             `json:"theme" db:"theme" gorm:"type:text;not null"`
	PostsPerPage    int                                `json:"postsPerPage" db:"posts_per_page" gorm:"type:integer;not null"`
	LastEditedBy    *string                            `json:"lastEditedBy,omitempty" db:"last_edited_by" gorm:"type:text"`
	CreatedAt       time.Time                          `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time                          `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
