package database

import (
	"errors"
	"strings"

	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuRepo struct {
	db *gorm.DB
}

func NewMenuRepo(db *gorm.DB) *MenuRepo {
	return &MenuRepo{db}
}

// AddMenu inserts a new taxonomy root. The slug defaults to a lowercase,
// hyphenated transform of the name and must not collide with any other menu.
// A caller-supplied slug is stored lowercase too.
func (r *MenuRepo) AddMenu(menu *models.Menu) error {
	if menu.Slug == "" {
		menu.Slug = models.Slugify(menu.Name)
	}
	menu.Slug = strings.ToLower(strings.TrimSpace(menu.Slug))
	var count int64
	if err := r.db.Model(&models.Menu{}).Where("slug = ?", menu.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.NewDuplicateSlug("menu", menu.Slug)
	}
	return r.db.Create(menu).Error
}

// ListMenus returns every menu with its submenus grouped underneath it.
// The grouping is done in memory after two independent reads, so a submenu
// created between the reads can be missing from one listing. Menus order by
// index then name; submenus by name.
func (r *MenuRepo) ListMenus(includeInactive bool) ([]models.MenuGroup, error) {
	menuQuery := r.db.Order("\"index\" ASC").Order("name ASC")
	submenuQuery := r.db.Order("name ASC")
	if !includeInactive {
		menuQuery = menuQuery.Where("status = ?", true)
		submenuQuery = submenuQuery.Where("status = ?", true)
	}

	var menus []models.Menu
	if err := menuQuery.Find(&menus).Error; err != nil {
		return nil, err
	}
	var submenus []models.Submenu
	if err := submenuQuery.Find(&submenus).Error; err != nil {
		return nil, err
	}

	byParent := make(map[uuid.UUID][]models.Submenu, len(menus))
	for _, s := range submenus {
		byParent[s.ParentID] = append(byParent[s.ParentID], s)
	}

	groups := make([]models.MenuGroup, 0, len(menus))
	for _, m := range menus {
		children := byParent[m.ID]
		if children == nil {
			children = []models.Submenu{}
		}
		groups = append(groups, models.MenuGroup{Menu: m, Submenus: children})
	}
	return groups, nil
}

// FindMenuByID returns a menu by id, or a NotFound error.
func (r *MenuRepo) FindMenuByID(id uuid.UUID) (*models.Menu, error) {
	var menu models.Menu
	err := r.db.First(&menu, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("menu")
	}
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// UpdateMenu applies a partial update to a menu. A slug rename does not
// cascade into posts that reference the old slug.
func (r *MenuRepo) UpdateMenu(id uuid.UUID, updates map[string]interface{}) (*models.Menu, error) {
	if _, err := r.FindMenuByID(id); err != nil {
		return nil, err
	}
	if rawSlug, ok := updates["slug"]; ok {
		if slug, ok := rawSlug.(string); ok && slug != "" {
			slug = strings.ToLower(strings.TrimSpace(slug))
			updates["slug"] = slug
			var count int64
			err := r.db.Model(&models.Menu{}).
				Where("slug = ? AND id <> ?", slug, id).
				Count(&count).Error
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, errs.NewDuplicateSlug("menu", slug)
			}
		}
	}
	if err := r.db.Model(&models.Menu{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindMenuByID(id)
}

// DeleteMenu removes a menu and every submenu under it. Children go first,
// inside one transaction, so a failure never leaves orphaned submenus.
func (r *MenuRepo) DeleteMenu(id uuid.UUID) error {
	if _, err := r.FindMenuByID(id); err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.Submenu{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Menu{}, "id = ?", id).Error
	})
}

// AddSubmenu inserts a taxonomy leaf. The parent must resolve to an existing
// menu and the slug must be unique across the whole submenu set.
func (r *MenuRepo) AddSubmenu(submenu *models.Submenu) error {
	var parents int64
	if err := r.db.Model(&models.Menu{}).Where("id = ?", submenu.ParentID).Count(&parents).Error; err != nil {
		return err
	}
	if parents == 0 {
		return errs.NewParentNotFound(submenu.ParentID.String())
	}
	if submenu.Slug == "" {
		submenu.Slug = models.Slugify(submenu.Name)
	}
	submenu.Slug = strings.ToLower(strings.TrimSpace(submenu.Slug))
	var count int64
	if err := r.db.Model(&models.Submenu{}).Where("slug = ?", submenu.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.NewDuplicateSlug("submenu", submenu.Slug)
	}
	return r.db.Create(submenu).Error
}

// FindSubmenuBySlug returns a submenu by slug, or a NotFound error.
func (r *MenuRepo) FindSubmenuBySlug(slug string) (*models.Submenu, error) {
	var submenu models.Submenu
	err := r.db.First(&submenu, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("submenu")
	}
	if err != nil {
		return nil, err
	}
	return &submenu, nil
}

// DeleteSubmenu removes a single submenu, failing with NotFound when the id
// does not resolve.
func (r *MenuRepo) DeleteSubmenu(id uuid.UUID) error {
	var submenu models.Submenu
	err := r.db.First(&submenu, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound("submenu")
	}
	if err != nil {
		return err
	}
	return r.db.Delete(&models.Submenu{}, "id = ?", id).Error
}

// SearchMenus matches menus by case-insensitive substring over name and slug.
func (r *MenuRepo) SearchMenus(query string) ([]*models.Menu, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var menus []*models.Menu
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", pattern, pattern).
		Order("\"index\" ASC").
		Order("name ASC").
		Find(&menus).Error
	return menus, err
}
