package services

import (
	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

var defaultMenus = []struct {
	Name     string
	Slug     string
	Submenus []string
}{
	{"BEAUTY", "beauty", []string{"beauty tips", "hair", "facial", "skin", "grooming", "makeup", "nail"}},
	{"TRENDS", "trends", []string{"influencers", "beauty trends", "celebrities"}},
	{"CAREER", "career", []string{"hiring talent", "career tips"}},
	{"FEATURES", "features", []string{"interview stories"}},
	{"PRODUCT", "product", []string{"product", "equipment"}},
	{"LOCATION", "location", []string{"india", "singapore"}},
}

// Seed populates the store with a demo admin, the default taxonomy and
// baseline settings. Existing users and menus are left alone; the settings
// document is written back to the baseline. Safe to run repeatedly.
func Seed(db database.Database) error {
	logger := log.With().Str("service", "seed").Logger()

	email := "admin@gmail.com"
	hash, err := HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Admin Demo",
		Email:        &email,
		PasswordHash: &hash,
		Role:         models.RoleAdmin,
	}
	if err := db.UserRepo().Add(&admin); err != nil {
		if !errs.IsAlreadyExists(err) {
			return err
		}
		logger.Info().Str("email", email).Msg("admin already present")
	}

	for i, seed := range defaultMenus {
		menu := models.Menu{
			Name:   seed.Name,
			Slug:   seed.Slug,
			Index:  i,
			Status: true,
		}
		if err := db.MenuRepo().AddMenu(&menu); err != nil {
			if !errs.IsDuplicateSlug(err) {
				return err
			}
			existing, err := db.MenuRepo().SearchMenus(seed.Slug)
			if err != nil || len(existing) == 0 {
				continue
			}
			menu = *existing[0]
		}
		for _, name := range seed.Submenus {
			submenu := models.Submenu{
				Name:     name,
				ParentID: menu.ID,
				Status:   true,
			}
			if err := db.MenuRepo().AddSubmenu(&submenu); err != nil && !errs.IsDuplicateSlug(err) {
				return err
			}
		}
	}

	settings := models.Settings{
		SiteName:        "DaSalon Blog",
		SiteDescription: "Beauty, trends and careers",
		Contact:         datatypes.NewJSONType(models.ContactInfo{}),
		Social:          datatypes.NewJSONType(models.SocialLinks{}),
		SEO:             datatypes.NewJSONType(models.SEOMeta{}),
	}
	if _, err := db.SettingsRepo().Seed(&settings); err != nil {
		return err
	}

	logger.Info().Msg("seed completed")
	return nil
}
