package api

import (
	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, auth services.Auth, storage *services.S3Storage) *routeHandlers {
	return &routeHandlers{
		authHandler:      newAuthHandler(database.UserRepo(), auth),
		userHandler:      newUserHandler(database.UserRepo(), storage),
		authorHandler:    newAuthorHandler(database.UserRepo(), database.PostRepo()),
		menuHandler:      newMenuHandler(database.MenuRepo()),
		postHandler:      newPostHandler(database.PostRepo()),
		settingsHandler:  newSettingsHandler(database.SettingsRepo(), storage),
		dashboardHandler: newDashboardHandler(database.StatsRepo()),
		uploadHandler:    newUploadHandler(storage),
	}
}
