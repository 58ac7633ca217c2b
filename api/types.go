package api

import (
	"github.com/dasalon/blog-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	userHandler      userHandler
	authorHandler    authorHandler
	menuHandler      menuHandler
	postHandler      postHandler
	settingsHandler  settingsHandler
	dashboardHandler dashboardHandler
	uploadHandler    uploadHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// createPostRequest accepts both the current plural relation fields and the
// singular menu/submenu fields older clients still send. A non-empty singular
// value wins over the plural list.
type createPostRequest struct {
	Title       string              `json:"title"`
	Slug        string              `json:"slug"`
	Description *string             `json:"description"`
	Content     *string             `json:"content"`
	Thumbnail   *string             `json:"thumbnail"`
	ShareURL    *string             `json:"shareUrl"`
	Status      string              `json:"status"`
	Featured    bool                `json:"featured"`
	Index       int                 `json:"index"`
	Images      []string            `json:"images"`
	Menu        string              `json:"menu"`
	Submenu     string              `json:"submenu"`
	Menus       []string            `json:"menus"`
	Submenus    []string            `json:"submenus"`
	Tags        []string            `json:"tags"`
	Authors     []models.PostAuthor `json:"authors"`
}

// updatePostRequest is a partial update: absent fields are left untouched.
type updatePostRequest struct {
	Title       *string              `json:"title"`
	Slug        *string              `json:"slug"`
	Description *string              `json:"description"`
	Content     *string              `json:"content"`
	Thumbnail   *string              `json:"thumbnail"`
	ShareURL    *string              `json:"shareUrl"`
	Status      *string              `json:"status"`
	Featured    *bool                `json:"featured"`
	Index       *int                 `json:"index"`
	Images      *[]string            `json:"images"`
	Menu        *string              `json:"menu"`
	Submenu     *string              `json:"submenu"`
	Menus       *[]string            `json:"menus"`
	Submenus    *[]string            `json:"submenus"`
	Tags        *[]string            `json:"tags"`
	Authors     *[]models.PostAuthor `json:"authors"`
}

// postResponse is the wire shape of a post. The plural relation lists are the
// source of truth; the singular menu/submenu fields are projections of the
// first element kept for older clients.
type postResponse struct {
	models.Post
	Menu     string   `json:"menu,omitempty"`
	Submenu  string   `json:"submenu,omitempty"`
	Menus    []string `json:"menus"`
	Submenus []string `json:"submenus"`
	Tags     []string `json:"tags"`
}

func newPostResponse(post *models.Post) postResponse {
	response := postResponse{
		Post:     *post,
		Menus:    post.MenuSlugs(),
		Submenus: post.SubmenuSlugs(),
		Tags:     post.TagValues(),
	}
	if len(response.Menus) > 0 {
		response.Menu = response.Menus[0]
	}
	if len(response.Submenus) > 0 {
		response.Submenu = response.Submenus[0]
	}
	return response
}

func newPostResponses(posts []*models.Post) []postResponse {
	responses := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, newPostResponse(post))
	}
	return responses
}
