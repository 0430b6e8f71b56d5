// Package repository defines the content store interface and its
// PostgreSQL implementation.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzahradnik/bistro/internal/domain/model"
	"github.com/mzahradnik/bistro/pkg/metrics"
)

// Fixed SQL statements, one per store method. Result ordering is part
// of the contract: the grouped endpoints rely on rows arriving sorted
// by category id then item id.
const (
	queryUsers = `
		SELECT id, email, username
		FROM users
		ORDER BY id`

	queryImages = `
		SELECT id, title, src, alt
		FROM images
		ORDER BY id`

	queryReviews = `
		SELECT id, author, avatar, rating, text, date::text
		FROM reviews
		ORDER BY id`

	queryFAQRows = `
		SELECT f.id, f.title, f.text, c.id, c.name
		FROM faqs f
		JOIN faq_categories c ON c.id = f.category_id
		ORDER BY c.id, f.id`

	queryMenuRows = `
		SELECT c.id, c.name, c.slug, c.description,
		       i.id, i.title, i.image, i.price::text, i.description,
		       i.badge, i.rating, i.currency
		FROM menu_categories c
		LEFT JOIN menu_items i ON i.category_id = c.id
		ORDER BY c.id, i.id`

	queryMenuItems = `
		SELECT id, category_id, title, image, price::text, description,
		       badge, rating, currency
		FROM menu_items
		ORDER BY id`

	queryMenuCategories = `
		SELECT id, name, slug, description
		FROM menu_categories
		ORDER BY id`
)

// PostgresStore implements Store over a pgx connection pool. The pool
// bounds the number of in-flight queries; callers past the bound wait
// for a free connection rather than erroring.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store over an existing pool. The caller
// retains ownership of the pool and is responsible for closing it.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("pool is nil")
	}
	return &PostgresStore{pool: pool}
}

// NewPool dials PostgreSQL and returns a connection pool. The default
// bound of 10 concurrent connections can be changed with WithMaxConns.
func NewPool(ctx context.Context, databaseURL string, opts ...Option) (*pgxpool.Pool, error) {
	pc := poolConfig{maxConns: 10}
	for _, opt := range opts {
		opt(&pc)
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	cfg.MaxConns = pc.maxConns
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return pool, nil
}

// Ping verifies database connectivity without touching data.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		metrics.RecordQueryError("ping")
		return fmt.Errorf("%w: %w", ErrPing, err)
	}
	return nil
}

// Stat exposes pool statistics for the metrics updater.
func (s *PostgresStore) Stat() *pgxpool.Stat {
	return s.pool.Stat()
}

// Users returns all user rows ordered by id.
func (s *PostgresStore) Users(ctx context.Context) ([]model.User, error) {
	defer observe("users", time.Now())

	rows, err := s.pool.Query(ctx, queryUsers)
	if err != nil {
		metrics.RecordQueryError("users")
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username); err != nil {
			metrics.RecordQueryError("users")
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordQueryError("users")
		return nil, fmt.Errorf("read users: %w", err)
	}
	return users, nil
}

// Images returns all gallery image rows ordered by id.
func (s *PostgresStore) Images(ctx context.Context) ([]model.Image, error) {
	defer observe("images", time.Now())

	rows, err := s.pool.Query(ctx, queryImages)
	if err != nil {
		metrics.RecordQueryError("images")
		return nil, fmt.Errorf("query images: %w", err)
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(&img.ID, &img.Title, &img.Src, &img.Alt); err != nil {
			metrics.RecordQueryError("images")
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordQueryError("images")
		return nil, fmt.Errorf("read images: %w", err)
	}
	return images, nil
}

// Reviews returns all review rows ordered by id.
func (s *PostgresStore) Reviews(ctx context.Context) ([]model.Review, error) {
	defer observe("reviews", time.Now())

	rows, err := s.pool.Query(ctx, queryReviews)
	if err != nil {
		metrics.RecordQueryError("reviews")
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(&r.ID, &r.Author, &r.Avatar, &r.Rating, &r.Text, &r.Date); err != nil {
			metrics.RecordQueryError("reviews")
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordQueryError("reviews")
		return nil, fmt.Errorf("read reviews: %w", err)
	}
	return reviews, nil
}

// FAQRows returns FAQ entries joined with their categories.
func (s *PostgresStore) FAQRows(ctx context.Context) ([]model.FAQRow, error) {
	defer observe("faq_rows", time.Now())

	rows, err := s.pool.Query(ctx, queryFAQRows)
	if err != nil {
		metrics.RecordQueryError("faq_rows")
		return nil, fmt.Errorf("query faq rows: %w", err)
	}
	defer rows.Close()

	var faqs []model.FAQRow
	for rows.Next() {
		var f model.FAQRow
		if err := rows.Scan(&f.ID, &f.Title, &f.Text, &f.CategoryID, &f.CategoryName); err != nil {
			metrics.RecordQueryError("faq_rows")
			return nil, fmt.Errorf("scan faq row: %w", err)
		}
		faqs = append(faqs, f)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordQueryError("faq_rows")
		return nil, fmt.Errorf("read faq rows: %w", err)
	}
	return faqs, nil
}

// MenuRows returns the left-joined category/item listing.
func (s *PostgresStore) MenuRows(ctx context.Context) ([]model.MenuRow, error) {
	defer observe("menu_rows", time.Now())

	rows, err := s.pool.Query(ctx, queryMenuRows)
	if err != nil {
		metrics.RecordQueryError("menu_rows")
		return nil, fmt.Errorf("query menu rows: %w", err)
	}
	defer rows.Close()

	var menu []model.MenuRow
	for rows.Next() {
		var m model.MenuRow
		if err := rows.Scan(
			&m.CategoryID, &m.CategoryName, &m.CategorySlug, &m.CategoryDescription,
			&m.ItemID, &m.ItemTitle, &m.Image, &m.Price, &m.ItemDescription,
			&m.Badge, &m.Rating, &m.Currency,
		); err != nil {
			metrics.RecordQueryError("menu_rows")
			return nil, fmt.Errorf("scan menu row: %w", err)
		}
		menu = append(menu, m)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordQueryError("menu_rows")
		return nil, fmt.Errorf("read menu rows: %w", err)
	}
	return menu, nil
}

// MenuItems returns the flat menu item listing ordered by id.
func (s *PostgresStore) MenuItems(ctx context.Context) ([]model.MenuItemRow, error) {
	defer observe("menu_items", time.Now())

	rows, err := s.pool.Query(ctx, queryMenuItems)
	if err != nil {
		metrics.RecordQueryError("menu_items")
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItemRow
	for rows.Next() {
		var i model.MenuItemRow
		if err := rows.Scan(
			&i.ID, &i.CategoryID, &i.Title, &i.Image, &i.Price,
			&i.Description, &i.Badge, &i.Rating, &i.Currency,
		); err != nil {
			metrics.RecordQueryError("menu_items")
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordQueryError("menu_items")
		return nil, fmt.Errorf("read menu items: %w", err)
	}
	return items, nil
}

// MenuCategories returns all menu category rows ordered by id.
func (s *PostgresStore) MenuCategories(ctx context.Context) ([]model.Category, error) {
	defer observe("menu_categories", time.Now())

	rows, err := s.pool.Query(ctx, queryMenuCategories)
	if err != nil {
		metrics.RecordQueryError("menu_categories")
		return nil, fmt.Errorf("query menu categories: %w", err)
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			metrics.RecordQueryError("menu_categories")
			return nil, fmt.Errorf("scan menu category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordQueryError("menu_categories")
		return nil, fmt.Errorf("read menu categories: %w", err)
	}
	return cats, nil
}

func observe(query string, start time.Time) {
	metrics.RecordQueryLatency(query, float64(time.Since(start).Milliseconds()))
}
