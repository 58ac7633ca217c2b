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
	"gorm.io/datatypes"
)

type settingsHandler struct {
	responder    Responder
	logger       zerolog.Logger
	settingsRepo *database.SettingsRepo
	storage      *services.S3Storage
}

func newSettingsHandler(settingsRepo *database.SettingsRepo, storage *services.S3Storage) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		settingsRepo: settingsRepo,
		storage:      storage,
	}
}

type settingsRequest struct {
	SiteName        string              `json:"siteName"`
	SiteDescription string              `json:"siteDescription"`
	Logo            *string             `json:"logo"`
	Favicon         *string             `json:"favicon"`
	Contact         *models.ContactInfo `json:"contact"`
	Social          *models.SocialLinks `json:"social"`
	SEO             *models.SEOMeta     `json:"seo"`
	Theme           string              `json:"theme"`
	PostsPerPage    int                 `json:"postsPerPage"`
}

// getSettings returns the site settings document
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Settings "Site settings"
// @Failure 404 {object} ErrorResponse "Not Found - No settings document yet"
// @Router /settings [get]
func (h settingsHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.Get()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "settings", err))
			return
		}
		if settings == nil {
			h.responder.WriteError(w, errs.NewNotFound("settings"))
			return
		}

		h.responder.WriteJSON(w, settings)
	}
}

// createSettings creates the settings document
func (h settingsHandler) createSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req settingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("settings request"))
			return
		}

		settings := models.Settings{
			SiteName:        req.SiteName,
			SiteDescription: req.SiteDescription,
			Logo:            req.Logo,
			Favicon:         req.Favicon,
			Theme:           req.Theme,
			PostsPerPage:    req.PostsPerPage,
			LastEditedBy:    &claims.Email,
		}
		if req.Contact != nil {
			settings.Contact = datatypes.NewJSONType(*req.Contact)
		}
		if req.Social != nil {
			settings.Social = datatypes.NewJSONType(*req.Social)
		}
		if req.SEO != nil {
			settings.SEO = datatypes.NewJSONType(*req.SEO)
		}

		if err := h.settingsRepo.Add(&settings); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "settings", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, settings)
	}
}

// updateSettings applies a partial update to the settings document and
// records who edited it last.
func (h settingsHandler) updateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		settingsID, err := uuid.Parse(chi.URLParam(r, "settingsID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid settingsID"))
			return
		}

		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			h.responder.WriteError(w, errs.Malformed("settings request"))
			return
		}

		updates := map[string]interface{}{"last_edited_by": claims.Email}
		assignString := func(key, column string) {
			if value, ok := raw[key]; ok {
				var s string
				if err := json.Unmarshal(value, &s); err == nil {
					updates[column] = s
				}
			}
		}
		assignString("siteName", "site_name")
		assignString("siteDescription", "site_description")
		assignString("logo", "logo")
		assignString("favicon", "favicon")
		assignString("theme", "theme")
		if value, ok := raw["postsPerPage"]; ok {
			var n int
			if err := json.Unmarshal(value, &n); err == nil {
				updates["posts_per_page"] = n
			}
		}
		if value, ok := raw["contact"]; ok {
			var contact models.ContactInfo
			if err := json.Unmarshal(value, &contact); err == nil {
				updates["contact"] = datatypes.NewJSONType(contact)
			}
		}
		if value, ok := raw["social"]; ok {
			var social models.SocialLinks
			if err := json.Unmarshal(value, &social); err == nil {
				updates["social"] = datatypes.NewJSONType(social)
			}
		}
		if value, ok := raw["seo"]; ok {
			var seo models.SEOMeta
			if err := json.Unmarshal(value, &seo); err == nil {
				updates["seo"] = datatypes.NewJSONType(seo)
			}
		}

		settings, err := h.settingsRepo.Update(settingsID, updates)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "settings", err))
			return
		}

		h.responder.WriteJSON(w, settings)
	}
}

// uploadFile stores a settings asset (logo, favicon) and returns its URL.
func (h settingsHandler) uploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		result, err := h.storage.Upload(r.Context(), data, header.Filename, "settings", header.Header.Get("Content-Type"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to upload file", err))
			return
		}

		h.responder.WriteJSON(w, result)
	}
}
