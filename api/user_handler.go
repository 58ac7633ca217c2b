package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/dasalon/blog-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 10 << 20 // 10MB

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	storage   *services.S3Storage
}

func newUserHandler(userRepo *database.UserRepo, storage *services.S3Storage) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		storage:   storage,
	}
}

type createUserRequest struct {
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Role        string  `json:"role"`
	Education   *string `json:"education"`
	Address     *string `json:"address"`
	Instagram   *string `json:"instagram"`
	Linkedin    *string `json:"linkedin"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Index       int     `json:"index"`
}

type updateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	Education   *string `json:"education"`
	Address     *string `json:"address"`
	Instagram   *string `json:"instagram"`
	Linkedin    *string `json:"linkedin"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Index       *int    `json:"index"`
}

// getAllUsers lists users, optionally filtered by a search query
// @Summary Get all users
// @Description Lists users; the search query matches name and email substrings
// @Tags Users
// @Produce json
// @Param search query string false "Search query"
// @Success 200 {array} models.User "List of users"
// @Router /users [get]
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")

		var users []*models.User
		var err error
		if search != "" {
			users, err = h.userRepo.Search(search)
		} else {
			users, err = h.userRepo.FindAll()
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "users", err))
			return
		}

		h.responder.WriteJSON(w, users)
	}
}

// getUser retrieves a single user by ID
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// createUser creates a user with an explicit role. Author profiles may be
// created without credentials; every other role needs email and password.
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Success 201 {object} models.User "Created user"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing fields"
// @Failure 409 {object} ErrorResponse "Conflict - Email already registered"
// @Router /users [post]
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("user request"))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		role := models.UserRole(req.Role)
		if role == "" {
			role = models.RoleUser
		}
		if role != models.RoleAuthor {
			if req.Email == nil || *req.Email == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
				return
			}
			if req.Password == nil || *req.Password == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
				return
			}
		}

		user := models.User{
			Name:        req.Name,
			Email:       req.Email,
			Role:        role,
			Education:   req.Education,
			Address:     req.Address,
			Instagram:   req.Instagram,
			Linkedin:    req.Linkedin,
			Description: req.Description,
			Image:       req.Image,
			Index:       req.Index,
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := services.HashPassword(*req.Password)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
				return
			}
			user.PasswordHash = &hash
		}

		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, user)
	}
}

// updateUser applies a partial update. Users may edit themselves; only
// admins may edit other accounts or change roles.
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		isAdmin := claims.Role == string(models.RoleAdmin)
		if !isAdmin && claims.UserID != userID.String() {
			h.responder.WriteError(w, errs.NewForbiddenError("cannot update another user"))
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("user request"))
			return
		}
		if req.Role != nil && !isAdmin {
			h.responder.WriteError(w, errs.NewForbiddenError("only admins can change roles"))
			return
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Email != nil {
			updates["email"] = *req.Email
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := services.HashPassword(*req.Password)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
				return
			}
			updates["password"] = hash
		}
		if req.Role != nil {
			updates["role"] = *req.Role
		}
		if req.Education != nil {
			updates["education"] = *req.Education
		}
		if req.Address != nil {
			updates["address"] = *req.Address
		}
		if req.Instagram != nil {
			updates["instagram"] = *req.Instagram
		}
		if req.Linkedin != nil {
			updates["linkedin"] = *req.Linkedin
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Image != nil {
			updates["image"] = *req.Image
		}
		if req.Index != nil {
			updates["index"] = *req.Index
		}

		user, err := h.userRepo.Update(userID, updates)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// deleteUser removes a user account. Posts keep their embedded author
// snapshots, so published content stays readable.
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.Delete(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"status": "success",
			"user":   user,
		})
	}
}

// uploadAvatar stores a profile image and writes its URL onto the user.
func (h userHandler) uploadAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}
		if claims.Role != string(models.RoleAdmin) && claims.UserID != userID.String() {
			h.responder.WriteError(w, errs.NewForbiddenError("cannot update another user"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("failed to parse multipart form"))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to read file", err))
			return
		}

		result, err := h.storage.Upload(r.Context(), data, header.Filename, "avatars", header.Header.Get("Content-Type"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to upload avatar", err))
			return
		}

		user, err := h.userRepo.Update(userID, map[string]interface{}{"image": result.SecureURL})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"user":   user,
			"upload": result,
		})
	}
}
