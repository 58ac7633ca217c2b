package database

import (
	"github.com/dasalon/blog-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	userRepo     *UserRepo
	menuRepo     *MenuRepo
	postRepo     *PostRepo
	settingsRepo *SettingsRepo
	statsRepo    *StatsRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:     NewUserRepo(db),
		menuRepo:     NewMenuRepo(db),
		postRepo:     NewPostRepo(db),
		settingsRepo: NewSettingsRepo(db),
		statsRepo:    NewStatsRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) MenuRepo() *MenuRepo {
	return d.menuRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) SettingsRepo() *SettingsRepo {
	return d.settingsRepo
}

func (d Database) StatsRepo() *StatsRepo {
	return d.statsRepo
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.Submenu{},
		&models.Post{},
		&models.PostMenu{},
		&models.PostSubmenu{},
		&models.PostTag{},
		&models.PostAuthor{},
		&models.Settings{},
	)
}
