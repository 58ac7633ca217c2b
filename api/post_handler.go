package api

import (
	"encoding/json"
	"net/http"

	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/dasalon/blog-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	postRepo  *database.PostRepo
}

func newPostHandler(postRepo *database.PostRepo) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		postRepo:  postRepo,
	}
}

// getAllBlogs lists posts, optionally filtered by menu/submenu slug or a
// search query
// @Summary Get all blogs
// @Description Lists posts ordered by index then most recent. menu/submenu filter by slug containment; search matches title, description and tags
// @Tags Blogs
// @Produce json
// @Param menu query string false "Menu slug filter"
// @Param submenu query string false "Submenu slug filter"
// @Param search query string false "Search query"
// @Success 200 {array} postResponse "List of blogs"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching blogs"
// @Router /blogs [get]
func (h postHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var posts []*models.Post
		var err error
		if search := query.Get("search"); search != "" {
			posts, err = h.postRepo.Search(search)
		} else {
			posts, err = h.postRepo.FindAll(query.Get("menu"), query.Get("submenu"))
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blogs", err))
			return
		}

		h.responder.WriteJSON(w, newPostResponses(posts))
	}
}

// getBlogBySlug retrieves a post by its slug
// @Summary Get blog by slug
// @Tags Blogs
// @Produce json
// @Param slug path string true "Blog slug"
// @Success 200 {object} postResponse "Blog details"
// @Failure 404 {object} ErrorResponse "Not Found - Blog not found"
// @Router /blogs/slug/{slug} [get]
func (h postHandler) getBlogBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		post, err := h.postRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}

		h.responder.WriteJSON(w, newPostResponse(post))
	}
}

// getBlog retrieves a post by ID
func (h postHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		post, err := h.postRepo.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}

		h.responder.WriteJSON(w, newPostResponse(post))
	}
}

// addView bumps the view counter and returns the new count
// @Summary Record a view
// @Description Increments the blog view counter atomically
// @Tags Blogs
// @Produce json
// @Param blogID path string true "Blog ID" format(uuid)
// @Success 200 {object} map[string]int64 "New view count"
// @Failure 404 {object} ErrorResponse "Not Found - Blog not found"
// @Router /blogs/{blogID}/view [post]
func (h postHandler) addView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		views, err := h.postRepo.IncrementViews(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog views", err))
			return
		}

		h.responder.WriteJSON(w, map[string]int64{"views": views})
	}
}

// createBlog creates a new post
// @Summary Create blog
// @Description Creates a post. Accepts legacy singular menu/submenu fields and folds them into the plural lists
// @Tags Blogs
// @Accept json
// @Produce json
// @Success 201 {object} postResponse "Created blog"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog data"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already in use"
// @Router /blogs [post]
func (h postHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("blog request"))
			return
		}
		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		post := models.Post{
			Title:       req.Title,
			Slug:        req.Slug,
			Description: req.Description,
			Content:     req.Content,
			Thumbnail:   req.Thumbnail,
			ShareURL:    req.ShareURL,
			Status:      req.Status,
			Featured:    req.Featured,
			Index:       req.Index,
			Images:      datatypes.NewJSONSlice(req.Images),
			Authors:     req.Authors,
		}
		if post.Content != nil && len(req.Images) == 0 {
			post.Images = datatypes.NewJSONSlice(services.ExtractImages(*post.Content))
		}
		post.SetMenuSlugs(req.Menus)
		post.SetSubmenuSlugs(req.Submenus)
		post.SetTagValues(req.Tags)

		legacy := database.LegacyRelations{Menu: req.Menu, Submenu: req.Submenu}
		if err := h.postRepo.Add(&post, legacy); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog", err))
			return
		}

		created, err := h.postRepo.FindByID(post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newPostResponse(created))
	}
}

// updateBlog applies a partial update to a post
// @Summary Update blog
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blogID path string true "Blog ID" format(uuid)
// @Success 200 {object} postResponse "Updated blog"
// @Failure 404 {object} ErrorResponse "Not Found - Blog not found"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already in use"
// @Router /blogs/{blogID} [put]
func (h postHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		var req updatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("blog request"))
			return
		}

		update := database.PostUpdate{
			Title:       req.Title,
			Slug:        req.Slug,
			Description: req.Description,
			Content:     req.Content,
			Thumbnail:   req.Thumbnail,
			ShareURL:    req.ShareURL,
			Status:      req.Status,
			Featured:    req.Featured,
			Index:       req.Index,
			Images:      req.Images,
			Menu:        req.Menu,
			Submenu:     req.Submenu,
			Menus:       req.Menus,
			Submenus:    req.Submenus,
			Tags:        req.Tags,
			Authors:     req.Authors,
		}

		post, err := h.postRepo.Update(blogID, update)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		h.responder.WriteJSON(w, newPostResponse(post))
	}
}

// deleteBlog removes a post by ID
// @Summary Delete blog
// @Tags Blogs
// @Produce json
// @Param blogID path string true "Blog ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Blog not found"
// @Router /blogs/{blogID} [delete]
func (h postHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		if err := h.postRepo.Delete(blogID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog deleted successfully",
		})
	}
}
