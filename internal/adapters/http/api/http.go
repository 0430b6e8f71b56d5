// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mzahradnik/bistro/internal/domain/catalog"
	"github.com/mzahradnik/bistro/internal/domain/model"
	"github.com/mzahradnik/bistro/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// PingDB verifies database connectivity for the db-health route.
	PingDB(ctx context.Context) error

	// Flat listings, one fixed query each.
	Users(ctx context.Context) ([]model.User, error)
	Images(ctx context.Context) ([]model.Image, error)
	Reviews(ctx context.Context) ([]model.Review, error)
	MenuItems(ctx context.Context) ([]model.MenuItemRow, error)
	MenuCategories(ctx context.Context) ([]model.Category, error)

	// Grouped listings built by the catalog package.
	FAQTree(ctx context.Context) (catalog.FAQTree, error)
	MenuTree(ctx context.Context) (catalog.MenuTree, error)
}

// Server wires HTTP routes for the content API.
type Server struct {
	healthHandler   *HealthHandler
	dbHealthHandler *DBHealthHandler
	usersHandler    *UsersHandler
	imagesHandler   *ImagesHandler
	reviewsHandler  *ReviewsHandler
	faqsHandler     *FAQsHandler
	menuHandler     *MenuHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		dbHealthHandler: NewDBHealthHandler(deps),
		usersHandler:    NewUsersHandler(deps),
		imagesHandler:   NewImagesHandler(deps),
		reviewsHandler:  NewReviewsHandler(deps),
		faqsHandler:     NewFAQsHandler(deps),
		menuHandler:     NewMenuHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. When prefix is non-empty
// (e.g. "/api"), every route is additionally mounted under it so both
// deployment variants are served by one process.
func (s *Server) Register(_ context.Context, mux *http.ServeMux, prefix string) {
	if mux == nil {
		panic("mux is nil")
	}

	paths := map[string]http.HandlerFunc{
		"/health":          route("health", s.healthHandler.Handle),
		"/db-health":       route("db_health", s.dbHealthHandler.Handle),
		"/users":           route("users", s.usersHandler.Handle),
		"/images":          route("images", s.imagesHandler.Handle),
		"/reviews":         route("reviews", s.reviewsHandler.Handle),
		"/faqs":            route("faqs", s.faqsHandler.Handle),
		"/menu":            route("menu", s.menuHandler.HandleGrouped),
		"/menu-items":      route("menu_items", s.menuHandler.HandleItems),
		"/menu-categories": route("menu_categories", s.menuHandler.HandleCategories),
	}

	for path, handler := range paths {
		mux.HandleFunc(path, handler)
		if prefix != "" {
			mux.HandleFunc(prefix+path, handler)
		}
	}

	// Prometheus metrics from our custom registry.
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// route adapts an error-returning handler into http.HandlerFunc,
// applying the method guard, the metrics wrapper, and the single
// error-to-500 policy shared by every data endpoint.
func route(endpoint string, h func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		if err := h(w, r); err != nil {
			writeFailure(w, err)
		}
	}, endpoint)
}

type errorResponse struct {
	Error string `json:"error"`
}

// healthResponse is the body of both health routes.
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFailure converts a handler error into the 500 response body.
// The error text is passed through verbatim.
func writeFailure(w http.ResponseWriter, err error) {
	var he *healthError
	if errors.As(err, &he) {
		writeJSON(w, http.StatusInternalServerError, healthResponse{Status: "ERROR", Message: he.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
