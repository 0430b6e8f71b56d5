// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/mzahradnik/bistro/internal/domain/catalog"
	"github.com/mzahradnik/bistro/internal/domain/model"
)

// MenuDependencies defines the interface for the menu listings.
type MenuDependencies interface {
	MenuTree(ctx context.Context) (catalog.MenuTree, error)
	MenuItems(ctx context.Context) ([]model.MenuItemRow, error)
	MenuCategories(ctx context.Context) ([]model.Category, error)
}

// MenuHandler handles the grouped menu, the flat item listing, and the
// category listing.
type MenuHandler struct {
	deps MenuDependencies
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(deps MenuDependencies) *MenuHandler {
	return &MenuHandler{deps: deps}
}

// HandleGrouped handles GET /menu requests.
func (h *MenuHandler) HandleGrouped(w http.ResponseWriter, r *http.Request) error {
	tree, err := h.deps.MenuTree(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, tree)
	return nil
}

// HandleItems handles GET /menu-items requests.
func (h *MenuHandler) HandleItems(w http.ResponseWriter, r *http.Request) error {
	items, err := h.deps.MenuItems(r.Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []model.MenuItemRow{}
	}
	writeJSON(w, http.StatusOK, items)
	return nil
}

// HandleCategories handles GET /menu-categories requests.
func (h *MenuHandler) HandleCategories(w http.ResponseWriter, r *http.Request) error {
	cats, err := h.deps.MenuCategories(r.Context())
	if err != nil {
		return err
	}
	if cats == nil {
		cats = []model.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
	return nil
}
