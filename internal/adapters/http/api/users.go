// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/mzahradnik/bistro/internal/domain/model"
)

// UsersDependencies defines the interface for the users listing.
type UsersDependencies interface {
	Users(ctx context.Context) ([]model.User, error)
}

// UsersHandler handles user listing requests.
type UsersHandler struct {
	deps UsersDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UsersDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// Handle handles GET /users requests.
func (h *UsersHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	users, err := h.deps.Users(r.Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
	return nil
}
