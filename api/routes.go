package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public, authenticated and admin-only route groups.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/auth/signup", handlers.authHandler.signup())
		r.Post("/auth/login", handlers.authHandler.login())

		r.Get("/blogs", handlers.postHandler.getAllBlogs())
		r.Get("/blogs/slug/{slug}", handlers.postHandler.getBlogBySlug())
		r.Get("/blogs/{blogID}", handlers.postHandler.getBlog())
		r.Post("/blogs/{blogID}/view", handlers.postHandler.addView())

		r.Get("/menu", handlers.menuHandler.getMenuTree())
		r.Get("/menu/menus", handlers.menuHandler.getMenus())

		r.Get("/authors", handlers.authorHandler.getAuthors())
		r.Get("/authors/{authorID}", handlers.authorHandler.getAuthor())
		r.Get("/authors/{authorID}/blogs", handlers.authorHandler.getAuthorBlogs())

		r.Get("/users", handlers.userHandler.getAllUsers())
		r.Get("/users/{userID}", handlers.userHandler.getUser())

		r.Get("/settings", handlers.settingsHandler.getSettings())
		r.Get("/dashboard-stats", handlers.dashboardHandler.getStats())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/auth/me", handlers.authHandler.me())

		r.Patch("/users/{userID}", handlers.userHandler.updateUser())
		r.Post("/users/{userID}/avatar", handlers.userHandler.uploadAvatar())

		r.Post("/blogs", handlers.postHandler.createBlog())
		r.Put("/blogs/{blogID}", handlers.postHandler.updateBlog())
		r.Delete("/blogs/{blogID}", handlers.postHandler.deleteBlog())

		r.Get("/menu/admin/all", handlers.menuHandler.getAllMenusAdmin())
		r.Post("/menu/menus", handlers.menuHandler.createMenu())
		r.Put("/menu/menus/{menuID}", handlers.menuHandler.updateMenu())
		r.Delete("/menu/menus/{menuID}", handlers.menuHandler.deleteMenu())
		r.Post("/menu/submenus", handlers.menuHandler.createSubmenu())
		r.Delete("/menu/submenus/{submenuID}", handlers.menuHandler.deleteSubmenu())

		r.Post("/upload", handlers.uploadHandler.upload())
	})

	// Admin-only routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(authMiddleware.requireAdmin)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/users", handlers.userHandler.createUser())
		r.Delete("/users/{userID}", handlers.userHandler.deleteUser())

		r.Post("/settings", handlers.settingsHandler.createSettings())
		r.Put("/settings/{settingsID}", handlers.settingsHandler.updateSettings())
		r.Post("/settings/upload", handlers.settingsHandler.uploadFile())
	})
}
