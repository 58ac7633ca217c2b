package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is the content unit. Taxonomy membership is stored as slug rows
// (PostMenu/PostSubmenu), never as foreign keys into the menu tables, and
// authorship is stored as embedded snapshots copied from the user record at
// write time.
type Post struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug        string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_posts_slug"`
	Description *string                     `json:"description,omitempty" db:"description" gorm:"type:text"`
	Content     *string                     `json:"content,omitempty" db:"content" gorm:"type:text"`
	Thumbnail   *string                     `json:"thumbnail,omitempty" db:"thumbnail" gorm:"type:text"`
	ShareURL    *string                     `json:"shareUrl,omitempty" db:"share_url" gorm:"type:text;column:share_url"`
	Status      string                      `json:"status" db:"status" gorm:"type:text;not null"`
	Featured    bool                        `json:"featured" db:"featured" gorm:"not null"`
	Views       int64                       `json:"views" db:"views" gorm:"type:bigint;not null;default:0"`
	Index       int                         `json:"index" db:"index" gorm:"type:integer;not null;default:0"`
	Images      datatypes.JSONSlice[string] `json:"images" db:"images"`
	CreatedAt   time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time                   `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Menus    []PostMenu    `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Submenus []PostSubmenu `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Tags     []PostTag     `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Authors  []PostAuthor  `json:"authors" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostMenu is a soft reference from a post to a menu slug.
type PostMenu struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	PostID uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index:idx_post_menus_post_id;uniqueIndex:idx_post_menus_unique"`
	Slug   string    `json:"slug" gorm:"type:text;not null;uniqueIndex:idx_post_menus_unique"`
}

func (m *PostMenu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PostSubmenu is a soft reference from a post to a submenu slug.
type PostSubmenu struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;not null;primaryKey"`
	PostID uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index:idx_post_submenus_post_id;uniqueIndex:idx_post_submenus_unique"`
	Slug   string    `json:"slug" gorm:"type:text;not null;uniqueIndex:idx_post_submenus_unique"`
}

func (s *PostSubmenu) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// PostTag is a free-form label on a post.
type PostTag struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	PostID uuid.UUID `json:"post_id" gorm:"type:uuid;not null;index:idx_post_tags_post_id;uniqueIndex:idx_post_tags_unique"`
	Value  string    `json:"value" gorm:"type:text;not null;uniqueIndex:idx_post_tags_unique"`
}

func (t *PostTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// PostAuthor is a denormalized author snapshot owned by its post. AuthorID
// points at a User but is never enforced: the display fields stay readable
// even after the user record changes or disappears. Resync happens only
// through the explicit backfill routine.
type PostAuthor struct {
	ID          uuid.UUID `json:"-" gorm:"type:uuid;primaryKey;not null"`
	PostID      uuid.UUID `json:"-" gorm:"type:uuid;not null;index:idx_post_authors_post_id"`
	AuthorID    uuid.UUID `json:"_id" gorm:"type:uuid;not null;index:idx_post_authors_author_id"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Image       *string   `json:"image,omitempty" gorm:"type:text"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	Position    int       `json:"-" gorm:"type:integer;not null;default:0"`
}

func (a *PostAuthor) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// MenuSlugs returns the post's menu slugs in stored order.
func (p *Post) MenuSlugs() []string {
	slugs := make([]string, 0, len(p.Menus))
	for _, m := range p.Menus {
		slugs = append(slugs, m.Slug)
	}
	return slugs
}

// SubmenuSlugs returns the post's submenu slugs in stored order.
func (p *Post) SubmenuSlugs() []string {
	slugs := make([]string, 0, len(p.Submenus))
	for _, s := range p.Submenus {
		slugs = append(slugs, s.Slug)
	}
	return slugs
}

// TagValues returns the post's tag values in stored order.
func (p *Post) TagValues() []string {
	values := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		values = append(values, t.Value)
	}
	return values
}

// SetMenuSlugs replaces the post's menu references.
func (p *Post) SetMenuSlugs(slugs []string) {
	p.Menus = make([]PostMenu, 0, len(slugs))
	for _, slug := range slugs {
		p.Menus = append(p.Menus, PostMenu{Slug: slug})
	}
}

// SetSubmenuSlugs replaces the post's submenu references.
func (p *Post) SetSubmenuSlugs(slugs []string) {
	p.Submenus = make([]PostSubmenu, 0, len(slugs))
	for _, slug := range slugs {
		p.Submenus = append(p.Submenus, PostSubmenu{Slug: slug})
	}
}

// SetTagValues replaces the post's tags.
func (p *Post) SetTagValues(values []string) {
	p.Tags = make([]PostTag, 0, len(values))
	for _, value := range values {
		p.Tags = append(p.Tags, PostTag{Value: value})
	}
}
