package database

import (
	"errors"
	"strings"

	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// LegacyRelations carries the singular menu/submenu fields still sent by old
// clients. Any write path folds them into the plural sequences before
// persistence; the plural form is the only shape at rest.
type LegacyRelations struct {
	Menu    string
	Submenu string
}

// PostUpdate is a partial update. Nil fields are left untouched; a non-nil
// relation slice replaces the stored sequence wholesale.
type PostUpdate struct {
	Title       *string
	Slug        *string
	Description *string
	Content     *string
	Thumbnail   *string
	ShareURL    *string
	Status      *string
	Featured    *bool
	Index       *int
	Images      *[]string
	Menu        *string
	Submenu     *string
	Menus       *[]string
	Submenus    *[]string
	Tags        *[]string
	Authors     *[]models.PostAuthor
}

func (r *PostRepo) withRelations() *gorm.DB {
	return r.db.
		Preload("Menus").
		Preload("Submenus").
		Preload("Tags").
		Preload("Authors", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

// Add inserts a new post. Legacy singular relations are folded into the
// plural sequences first, the slug defaults to a transform of the title,
// status defaults to draft and the view counter starts at zero. The author
// snapshots are stored as given: the referenced user ids are deliberately
// not validated.
func (r *PostRepo) Add(post *models.Post, legacy LegacyRelations) error {
	post.SetMenuSlugs(models.FoldRelation(legacy.Menu, post.MenuSlugs()))
	post.SetSubmenuSlugs(models.FoldRelation(legacy.Submenu, post.SubmenuSlugs()))

	if post.Slug == "" {
		post.Slug = models.Slugify(post.Title)
	}
	post.Slug = strings.ToLower(strings.TrimSpace(post.Slug))
	if post.Status == "" {
		post.Status = models.StatusDraft
	}
	post.Views = 0
	for i := range post.Authors {
		post.Authors[i].Position = i
	}

	var count int64
	if err := r.db.Model(&models.Post{}).Where("slug = ?", post.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.NewDuplicateSlug("post", post.Slug)
	}
	return r.db.Create(post).Error
}

// FindAll returns posts ordered by index ascending, then most recent first.
// A menu or submenu filter matches posts whose slug sequence contains the
// value; stored posts are always in plural form, so containment covers the
// legacy singular shape too.
func (r *PostRepo) FindAll(menu, submenu string) ([]*models.Post, error) {
	query := r.withRelations().
		Order("\"index\" ASC").
		Order("created_at DESC")
	if menu != "" {
		query = query.Where("id IN (?)",
			r.db.Model(&models.PostMenu{}).Select("post_id").Where("slug = ?", menu))
	}
	if submenu != "" {
		query = query.Where("id IN (?)",
			r.db.Model(&models.PostSubmenu{}).Select("post_id").Where("slug = ?", submenu))
	}
	var posts []*models.Post
	err := query.Find(&posts).Error
	return posts, err
}

// FindByID returns a post by id, or a NotFound error.
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.withRelations().First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("post")
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug returns a post by slug, or a NotFound error.
func (r *PostRepo) FindBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.withRelations().First(&post, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("post")
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByAuthor returns posts whose embedded snapshot sequence contains the
// given author id, most recent first.
func (r *PostRepo) FindByAuthor(authorID uuid.UUID) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withRelations().
		Where("id IN (?)",
			r.db.Model(&models.PostAuthor{}).Select("post_id").Where("author_id = ?", authorID)).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Search matches posts by case-insensitive substring over title, description
// and tags, most recent first.
func (r *PostRepo) Search(query string) ([]*models.Post, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var posts []*models.Post
	err := r.withRelations().
		Where("LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ? OR id IN (?)",
			pattern, pattern,
			r.db.Model(&models.PostTag{}).Select("post_id").Where("LOWER(value) LIKE ?", pattern)).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// IncrementViews bumps the view counter by one as a single UPDATE statement,
// so concurrent view events never lose increments, and returns the counter.
func (r *PostRepo) IncrementViews(id uuid.UUID) (int64, error) {
	res := r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, errs.NewNotFound("post")
	}
	var views int64
	err := r.db.Model(&models.Post{}).Select("views").Where("id = ?", id).Scan(&views).Error
	return views, err
}

// Update applies a partial update. Legacy singular relations fold into the
// plural sequences, a slug change is re-checked for uniqueness and non-nil
// relation slices replace the stored rows inside one transaction.
func (r *PostRepo) Update(id uuid.UUID, update PostUpdate) (*models.Post, error) {
	if _, err := r.FindByID(id); err != nil {
		return nil, err
	}

	if update.Menu != nil && *update.Menu != "" {
		update.Menus = &[]string{*update.Menu}
	}
	if update.Submenu != nil && *update.Submenu != "" {
		update.Submenus = &[]string{*update.Submenu}
	}

	columns := map[string]interface{}{}
	if update.Title != nil {
		columns["title"] = *update.Title
	}
	if update.Slug != nil && *update.Slug != "" {
		slug := strings.ToLower(strings.TrimSpace(*update.Slug))
		var count int64
		err := r.db.Model(&models.Post{}).
			Where("slug = ? AND id <> ?", slug, id).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errs.NewDuplicateSlug("post", slug)
		}
		columns["slug"] = slug
	}
	if update.Description != nil {
		columns["description"] = *update.Description
	}
	if update.Content != nil {
		columns["content"] = *update.Content
	}
	if update.Thumbnail != nil {
		columns["thumbnail"] = *update.Thumbnail
	}
	if update.ShareURL != nil {
		columns["share_url"] = *update.ShareURL
	}
	if update.Status != nil {
		columns["status"] = *update.Status
	}
	if update.Featured != nil {
		columns["featured"] = *update.Featured
	}
	if update.Index != nil {
		columns["index"] = *update.Index
	}
	if update.Images != nil {
		columns["images"] = datatypes.NewJSONSlice(*update.Images)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if len(columns) > 0 {
			if err := tx.Model(&models.Post{}).Where("id = ?", id).Updates(columns).Error; err != nil {
				return err
			}
		}
		if update.Menus != nil {
			if err := replaceSlugRows(tx, &models.PostMenu{}, id, *update.Menus, func(slug string) interface{} {
				return &models.PostMenu{PostID: id, Slug: slug}
			}); err != nil {
				return err
			}
		}
		if update.Submenus != nil {
			if err := replaceSlugRows(tx, &models.PostSubmenu{}, id, *update.Submenus, func(slug string) interface{} {
				return &models.PostSubmenu{PostID: id, Slug: slug}
			}); err != nil {
				return err
			}
		}
		if update.Tags != nil {
			if err := replaceSlugRows(tx, &models.PostTag{}, id, *update.Tags, func(value string) interface{} {
				return &models.PostTag{PostID: id, Value: value}
			}); err != nil {
				return err
			}
		}
		if update.Authors != nil {
			if err := tx.Where("post_id = ?", id).Delete(&models.PostAuthor{}).Error; err != nil {
				return err
			}
			for i, author := range *update.Authors {
				author.ID = uuid.Nil
				author.PostID = id
				author.Position = i
				if err := tx.Create(&author).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

// Delete removes a post and its owned rows. Removal of a nonexistent id is
// reported as NotFound rather than silently succeeding.
func (r *PostRepo) Delete(id uuid.UUID) error {
	if _, err := r.FindByID(id); err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostMenu{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostSubmenu{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostAuthor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", id).Error
	})
}

func replaceSlugRows(tx *gorm.DB, model interface{}, postID uuid.UUID, values []string, build func(string) interface{}) error {
	if err := tx.Where("post_id = ?", postID).Delete(model).Error; err != nil {
		return err
	}
	for _, value := range values {
		if err := tx.Create(build(value)).Error; err != nil {
			return err
		}
	}
	return nil
}
