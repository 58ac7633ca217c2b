package database

import (
	"errors"

	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SettingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) *SettingsRepo {
	return &SettingsRepo{db}
}

// Get returns the site settings document, or nil when none exists yet.
func (r *SettingsRepo) Get() (*models.Settings, error) {
	var settings models.Settings
	err := r.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetByID returns a settings document by id, or a NotFound error.
func (r *SettingsRepo) GetByID(id uuid.UUID) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.First(&settings, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("settings")
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func applySettingsDefaults(settings *models.Settings) {
	if settings.SiteName == "" {
		settings.SiteName = "My Site"
	}
	if settings.SiteDescription == "" {
		settings.SiteDescription = "Site description"
	}
	if settings.Theme == "" {
		settings.Theme = "light"
	}
	if settings.PostsPerPage == 0 {
		settings.PostsPerPage = 10
	}
}

// Add inserts a new settings document, applying the site defaults for
// anything left blank.
func (r *SettingsRepo) Add(settings *models.Settings) error {
	applySettingsDefaults(settings)
	return r.db.Create(settings).Error
}

// Update applies a partial update to a settings document.
func (r *SettingsRepo) Update(id uuid.UUID, updates map[string]interface{}) (*models.Settings, error) {
	if _, err := r.GetByID(id); err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Settings{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// Seed writes the given settings over the existing document, or creates one
// when the store is empty.
func (r *SettingsRepo) Seed(settings *models.Settings) (*models.Settings, error) {
	existing, err := r.Get()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		applySettingsDefaults(settings)
		settings.ID = existing.ID
		settings.CreatedAt = existing.CreatedAt
		if err := r.db.Save(settings).Error; err != nil {
			return nil, err
		}
		return settings, nil
	}
	if err := r.Add(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
