package services

import (
	"testing"

	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return database.New(db)
}

func TestBackfillAuthorSnapshots(t *testing.T) {
	db := setupTestDB(t)

	author := models.User{Name: "Old Name", Role: models.RoleAuthor}
	if err := db.UserRepo().Add(&author); err != nil {
		t.Fatalf("Add user failed: %v", err)
	}

	stale := models.Post{
		Title:   "Stale",
		Authors: []models.PostAuthor{{AuthorID: author.ID, Name: "Old Name"}},
	}
	orphaned := models.Post{
		Title:   "Orphaned",
		Authors: []models.PostAuthor{{AuthorID: uuid.New(), Name: "Gone Writer"}},
	}
	for _, p := range []*models.Post{&stale, &orphaned} {
		if err := db.PostRepo().Add(p, database.LegacyRelations{}); err != nil {
			t.Fatalf("Add post failed: %v", err)
		}
	}

	if _, err := db.UserRepo().Update(author.ID, map[string]interface{}{"name": "New Name"}); err != nil {
		t.Fatalf("Update user failed: %v", err)
	}

	updated, err := BackfillAuthorSnapshots(db.UserRepo(), db.PostRepo())
	if err != nil {
		t.Fatalf("BackfillAuthorSnapshots failed: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1 rewritten post", updated)
	}

	refreshed, err := db.PostRepo().FindByID(stale.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if refreshed.Authors[0].Name != "New Name" {
		t.Errorf("snapshot name = %q, want the live user record", refreshed.Authors[0].Name)
	}

	kept, err := db.PostRepo().FindByID(orphaned.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if kept.Authors[0].Name != "Gone Writer" {
		t.Errorf("orphaned snapshot = %q, want left as-is", kept.Authors[0].Name)
	}
}

func TestBackfillIsNoOpWhenInSync(t *testing.T) {
	db := setupTestDB(t)

	author := models.User{Name: "Fresh", Role: models.RoleAuthor}
	if err := db.UserRepo().Add(&author); err != nil {
		t.Fatalf("Add user failed: %v", err)
	}
	post := models.Post{
		Title:   "Synced",
		Authors: []models.PostAuthor{{AuthorID: author.ID, Name: "Fresh"}},
	}
	if err := db.PostRepo().Add(&post, database.LegacyRelations{}); err != nil {
		t.Fatalf("Add post failed: %v", err)
	}

	updated, err := BackfillAuthorSnapshots(db.UserRepo(), db.PostRepo())
	if err != nil {
		t.Fatalf("BackfillAuthorSnapshots failed: %v", err)
	}
	if updated != 0 {
		t.Errorf("updated = %d, want 0", updated)
	}
}

func TestSeedIsRepeatable(t *testing.T) {
	db := setupTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	admin, err := db.UserRepo().FindByEmail("admin@gmail.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if admin == nil || admin.Role != models.RoleAdmin {
		t.Fatal("seed should create the demo admin once")
	}

	groups, err := db.MenuRepo().ListMenus(true)
	if err != nil {
		t.Fatalf("ListMenus failed: %v", err)
	}
	if len(groups) != 6 {
		t.Errorf("menu count = %d, want the 6 default menus", len(groups))
	}

	settings, err := db.SettingsRepo().Get()
	if err != nil {
		t.Fatalf("Get settings failed: %v", err)
	}
	if settings == nil {
		t.Fatal("seed should create the settings document")
	}

	// reseeding restores the baseline settings without creating a second row
	if _, err := db.SettingsRepo().Update(settings.ID, map[string]interface{}{"site_name": "Edited"}); err != nil {
		t.Fatalf("Update settings failed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("third Seed failed: %v", err)
	}
	reseeded, err := db.SettingsRepo().Get()
	if err != nil {
		t.Fatalf("Get settings failed: %v", err)
	}
	if reseeded.SiteName != "DaSalon Blog" {
		t.Errorf("SiteName = %q, want the baseline restored", reseeded.SiteName)
	}
	if reseeded.ID != settings.ID {
		t.Error("reseeding should reuse the existing settings document")
	}
}
