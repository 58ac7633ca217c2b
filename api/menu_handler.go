package api

import (
	"encoding/json"
	"net/http"

	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type menuHandler struct {
	responder Responder
	logger    zerolog.Logger
	menuRepo  *database.MenuRepo
}

func newMenuHandler(menuRepo *database.MenuRepo) menuHandler {
	logger := log.With().Str("handlerName", "menuHandler").Logger()

	return menuHandler{
		responder: NewResponder(logger),
		logger:    logger,
		menuRepo:  menuRepo,
	}
}

type createMenuRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Index       int     `json:"index"`
	Status      *bool   `json:"status"`
}

type updateMenuRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Index       *int    `json:"index"`
	Status      *bool   `json:"status"`
}

type createSubmenuRequest struct {
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Description    *string `json:"description"`
	ParentID       string  `json:"parent_id"`
	ShowOnHomePage bool    `json:"showOnHomePage"`
	Status         *bool   `json:"status"`
}

// getMenuTree lists active menus with their active submenus grouped
// underneath them
// @Summary Get menu tree
// @Description Lists active menus with their submenus for site navigation
// @Tags Menus
// @Produce json
// @Success 200 {array} models.MenuGroup "Grouped menu listing"
// @Router /menu [get]
func (h menuHandler) getMenuTree() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := h.menuRepo.ListMenus(false)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "menus", err))
			return
		}

		h.responder.WriteJSON(w, groups)
	}
}

// getMenus serves the same grouped listing; with a search query it returns
// the flat menus matching the name/slug substring instead.
func (h menuHandler) getMenus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if search := r.URL.Query().Get("search"); search != "" {
			menus, err := h.menuRepo.SearchMenus(search)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("search", "menus", err))
				return
			}
			h.responder.WriteJSON(w, menus)
			return
		}

		groups, err := h.menuRepo.ListMenus(false)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "menus", err))
			return
		}

		h.responder.WriteJSON(w, groups)
	}
}

// getAllMenusAdmin lists every menu including inactive ones
// @Summary Get all menus (admin)
// @Tags Menus
// @Produce json
// @Success 200 {array} models.MenuGroup "Grouped menu listing including inactive"
// @Router /menu/admin/all [get]
func (h menuHandler) getAllMenusAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := h.menuRepo.ListMenus(true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "menus", err))
			return
		}

		h.responder.WriteJSON(w, groups)
	}
}

// createMenu creates a taxonomy root
// @Summary Create menu
// @Tags Menus
// @Accept json
// @Produce json
// @Success 201 {object} models.Menu "Created menu"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already in use"
// @Router /menu/menus [post]
func (h menuHandler) createMenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMenuRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("menu request"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		status := true
		if req.Status != nil {
			status = *req.Status
		}
		menu := models.Menu{
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
			Index:       req.Index,
			Status:      status,
		}
		if err := h.menuRepo.AddMenu(&menu); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "menu", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, menu)
	}
}

// updateMenu applies a partial update to a menu
func (h menuHandler) updateMenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuID, err := uuid.Parse(chi.URLParam(r, "menuID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid menuID"))
			return
		}

		var req updateMenuRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("menu request"))
			return
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Slug != nil {
			updates["slug"] = *req.Slug
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Index != nil {
			updates["index"] = *req.Index
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}

		menu, err := h.menuRepo.UpdateMenu(menuID, updates)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "menu", err))
			return
		}

		h.responder.WriteJSON(w, menu)
	}
}

// deleteMenu removes a menu and all of its submenus
// @Summary Delete menu
// @Tags Menus
// @Produce json
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Menu not found"
// @Router /menu/menus/{menuID} [delete]
func (h menuHandler) deleteMenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuID, err := uuid.Parse(chi.URLParam(r, "menuID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid menuID"))
			return
		}

		if err := h.menuRepo.DeleteMenu(menuID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "menu", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "menu and its submenus deleted",
		})
	}
}

// createSubmenu creates a taxonomy leaf under an existing menu
func (h menuHandler) createSubmenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSubmenuRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("submenu request"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid parent_id"))
			return
		}

		status := true
		if req.Status != nil {
			status = *req.Status
		}
		submenu := models.Submenu{
			Name:           req.Name,
			Slug:           req.Slug,
			Description:    req.Description,
			ParentID:       parentID,
			ShowOnHomePage: req.ShowOnHomePage,
			Status:         status,
		}
		if err := h.menuRepo.AddSubmenu(&submenu); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "submenu", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, submenu)
	}
}

// deleteSubmenu removes a single submenu
func (h menuHandler) deleteSubmenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submenuID, err := uuid.Parse(chi.URLParam(r, "submenuID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid submenuID"))
			return
		}

		if err := h.menuRepo.DeleteSubmenu(submenuID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "submenu", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "submenu deleted",
		})
	}
}
