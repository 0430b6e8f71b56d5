// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/mzahradnik/bistro/internal/domain/catalog"
)

// FAQsDependencies defines the interface for the grouped FAQ listing.
type FAQsDependencies interface {
	FAQTree(ctx context.Context) (catalog.FAQTree, error)
}

// FAQsHandler handles grouped FAQ listing requests.
type FAQsHandler struct {
	deps FAQsDependencies
}

// NewFAQsHandler creates a new FAQs handler.
func NewFAQsHandler(deps FAQsDependencies) *FAQsHandler {
	return &FAQsHandler{deps: deps}
}

// Handle handles GET /faqs requests.
func (h *FAQsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	tree, err := h.deps.FAQTree(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, tree)
	return nil
}
