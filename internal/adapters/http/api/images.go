// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/mzahradnik/bistro/internal/domain/model"
)

// ImagesDependencies defines the interface for the gallery listing.
type ImagesDependencies interface {
	Images(ctx context.Context) ([]model.Image, error)
}

// ImagesHandler handles gallery image listing requests.
type ImagesHandler struct {
	deps ImagesDependencies
}

// NewImagesHandler creates a new images handler.
func NewImagesHandler(deps ImagesDependencies) *ImagesHandler {
	return &ImagesHandler{deps: deps}
}

// Handle handles GET /images requests.
func (h *ImagesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	images, err := h.deps.Images(r.Context())
	if err != nil {
		return err
	}
	if images == nil {
		images = []model.Image{}
	}
	writeJSON(w, http.StatusOK, images)
	return nil
}
