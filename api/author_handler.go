package api

import (
	"net/http"

	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/errs"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authorHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	postRepo  *database.PostRepo
}

func newAuthorHandler(userRepo *database.UserRepo, postRepo *database.PostRepo) authorHandler {
	logger := log.With().Str("handlerName", "authorHandler").Logger()

	return authorHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		postRepo:  postRepo,
	}
}

// getAuthors lists author-role users in display order
// @Summary Get authors
// @Tags Authors
// @Produce json
// @Success 200 {array} models.User "List of authors"
// @Router /authors [get]
func (h authorHandler) getAuthors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authors, err := h.userRepo.FindAuthors()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "authors", err))
			return
		}

		h.responder.WriteJSON(w, authors)
	}
}

// getAuthor retrieves an author by ID. Users without the author role are
// reported as not found.
func (h authorHandler) getAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := uuid.Parse(chi.URLParam(r, "authorID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid authorID"))
			return
		}

		author, err := h.userRepo.FindAuthorByID(authorID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "author", err))
			return
		}

		h.responder.WriteJSON(w, author)
	}
}

// getAuthorBlogs lists the posts whose snapshot sequence contains the author.
func (h authorHandler) getAuthorBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := uuid.Parse(chi.URLParam(r, "authorID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid authorID"))
			return
		}

		if _, err := h.userRepo.FindAuthorByID(authorID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "author", err))
			return
		}

		posts, err := h.postRepo.FindByAuthor(authorID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "author blogs", err))
			return
		}

		h.responder.WriteJSON(w, newPostResponses(posts))
	}
}
