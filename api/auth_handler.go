package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/dasalon/blog-backend/services"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	auth      services.Auth
}

func newAuthHandler(userRepo *database.UserRepo, auth services.Auth) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		auth:      auth,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// signup registers a new reader account and returns a signed token
// @Summary Sign up
// @Description Registers a new account with the default user role
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} tokenResponse "Token and created user"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing fields"
// @Failure 409 {object} ErrorResponse "Conflict - Email already registered"
// @Router /auth/signup [post]
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("signup request"))
			return
		}

		if req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}
		if req.Name == "" {
			req.Name = strings.Split(req.Email, "@")[0]
		}

		hash, err := services.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		user := models.User{
			Name:         req.Name,
			Email:        &req.Email,
			PasswordHash: &hash,
			Role:         models.RoleUser,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		token, err := h.auth.IssueToken(&user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, tokenResponse{Token: token, User: &user})
	}
}

// login verifies credentials and returns a signed token
// @Summary Log in
// @Description Verifies email and password, returns a token and the user
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} tokenResponse "Token and user"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid credentials"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("login request"))
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil || user.PasswordHash == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}
		if !services.CheckPassword(*user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, err := h.auth.IssueToken(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}

		h.responder.WriteJSON(w, tokenResponse{Token: token, User: user})
	}
}

// me resolves the token on the request to its user record
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User "User record"
// @Failure 401 {object} ErrorResponse "Unauthorized - Missing or invalid token"
// @Router /auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
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
