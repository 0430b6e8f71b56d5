// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/mzahradnik/bistro/internal/domain/model"
)

// ReviewsDependencies defines the interface for the reviews listing.
type ReviewsDependencies interface {
	Reviews(ctx context.Context) ([]model.Review, error)
}

// ReviewsHandler handles review listing requests.
type ReviewsHandler struct {
	deps ReviewsDependencies
}

// NewReviewsHandler creates a new reviews handler.
func NewReviewsHandler(deps ReviewsDependencies) *ReviewsHandler {
	return &ReviewsHandler{deps: deps}
}

// Handle handles GET /reviews requests.
func (h *ReviewsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	reviews, err := h.deps.Reviews(r.Context())
	if err != nil {
		return err
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
	return nil
}
