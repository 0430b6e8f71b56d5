// Package service provides the core content service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	repository "github.com/mzahradnik/bistro/internal/adapters/repository"
	"github.com/mzahradnik/bistro/internal/domain/catalog"
	"github.com/mzahradnik/bistro/internal/domain/model"
	"github.com/mzahradnik/bistro/pkg/logger"
	"github.com/mzahradnik/bistro/pkg/metrics"
)

// Service owns the connection pool and store and implements the API
// dependencies. The pool is injected here rather than held as a
// package global so shutdown is explicit.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store
	pool  *pgxpool.Pool

	// Configuration
	databaseURL string
	maxConns    int32

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDatabaseURL sets the PostgreSQL connection string.
func WithDatabaseURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.databaseURL = url
		}
	}
}

// WithMaxConns bounds the connection pool.
func WithMaxConns(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxConns = int32(n)
		}
	}
}

// WithStore injects a pre-built store, bypassing the pool dial. Used
// by tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxConns: 10,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start dials the database and wires the store. When a store was
// injected, no pool is created.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting content service...")

	if s.store == nil {
		pool, err := repository.NewPool(ctx, s.databaseURL, repository.WithMaxConns(s.maxConns))
		if err != nil {
			return fmt.Errorf("dial database: %w", err)
		}
		s.pool = pool
		s.store = repository.NewPostgresStore(pool)
		metrics.UpdatePoolMaxConns(s.maxConns)
	}

	s.started = true
	s.logger.Info(ctx, "content service started",
		logger.Int("maxConns", int(s.maxConns)),
	)

	return nil
}

// Stop closes the connection pool.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping content service...")

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}

	s.started = false
	s.logger.Info(context.Background(), "content service stopped")
}

// Migrate applies the embedded schema and seed migrations. The
// service must be started with a real pool.
func (s *Service) Migrate(ctx context.Context) error {
	s.mu.RLock()
	pool := s.pool
	s.mu.RUnlock()

	if pool == nil {
		return fmt.Errorf("migrate: no connection pool")
	}
	return repository.ApplyMigrations(ctx, pool)
}

// PingDB verifies database connectivity for the db-health route.
func (s *Service) PingDB(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Users returns all user rows.
func (s *Service) Users(ctx context.Context) ([]model.User, error) {
	return s.store.Users(ctx)
}

// Images returns all gallery image rows.
func (s *Service) Images(ctx context.Context) ([]model.Image, error) {
	return s.store.Images(ctx)
}

// Reviews returns all review rows.
func (s *Service) Reviews(ctx context.Context) ([]model.Review, error) {
	return s.store.Reviews(ctx)
}

// MenuItems returns the flat menu item listing.
func (s *Service) MenuItems(ctx context.Context) ([]model.MenuItemRow, error) {
	return s.store.MenuItems(ctx)
}

// MenuCategories returns all menu category rows.
func (s *Service) MenuCategories(ctx context.Context) ([]model.Category, error) {
	return s.store.MenuCategories(ctx)
}

// FAQTree returns FAQ entries grouped by category. The grouping is
// pure and local to the request; nothing is cached.
func (s *Service) FAQTree(ctx context.Context) (catalog.FAQTree, error) {
	rows, err := s.store.FAQRows(ctx)
	if err != nil {
		return catalog.FAQTree{}, err
	}
	return catalog.BuildFAQTree(rows), nil
}

// MenuTree returns menu items grouped by category with the fixed
// default substitutions applied.
func (s *Service) MenuTree(ctx context.Context) (catalog.MenuTree, error) {
	rows, err := s.store.MenuRows(ctx)
	if err != nil {
		return catalog.MenuTree{}, err
	}
	return catalog.BuildMenuTree(rows), nil
}

// PoolStat exposes pool statistics for the metrics updater. Returns
// nil when running with an injected store.
func (s *Service) PoolStat() *pgxpool.Stat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pool == nil {
		return nil
	}
	return s.pool.Stat()
}
