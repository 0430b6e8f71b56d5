// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// HealthHandler answers liveness checks without touching the database.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Handle handles GET /health requests.
func (h *HealthHandler) Handle(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, healthResponse{Status: "OK"})
	return nil
}

// DBHealthDependencies defines the interface for database health checks.
type DBHealthDependencies interface {
	PingDB(ctx context.Context) error
}

// DBHealthHandler reports database connectivity.
type DBHealthHandler struct {
	deps DBHealthDependencies
}

// NewDBHealthHandler creates a new database health handler.
func NewDBHealthHandler(deps DBHealthDependencies) *DBHealthHandler {
	return &DBHealthHandler{deps: deps}
}

// Handle handles GET /db-health requests. A failed ping surfaces as
// 500 {status: ERROR, message} via the shared error adapter.
func (h *DBHealthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if err := h.deps.PingDB(r.Context()); err != nil {
		return &healthError{err: err}
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "OK",
		Message: "database connection is healthy",
	})
	return nil
}
