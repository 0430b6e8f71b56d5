// Package repository defines the content store interface and its
// PostgreSQL implementation.
package repository

import (
	"context"

	"github.com/mzahradnik/bistro/internal/domain/model"
)

// Store provides read access to the content database. Every method
// runs one fixed, parameterless query and returns its rows in the
// order the statement declares.
type Store interface {
	// Ping verifies database connectivity without touching data.
	Ping(ctx context.Context) error

	// Users returns all user rows ordered by id.
	Users(ctx context.Context) ([]model.User, error)

	// Images returns all gallery image rows ordered by id.
	Images(ctx context.Context) ([]model.Image, error)

	// Reviews returns all review rows ordered by id.
	Reviews(ctx context.Context) ([]model.Review, error)

	// FAQRows returns FAQ entries joined with their categories,
	// ordered by category id then entry id.
	FAQRows(ctx context.Context) ([]model.FAQRow, error)

	// MenuRows returns the left-joined category/item listing, ordered
	// by category id then item id. Categories without items produce a
	// row with a null item side.
	MenuRows(ctx context.Context) ([]model.MenuRow, error)

	// MenuItems returns the flat menu item listing ordered by id.
	MenuItems(ctx context.Context) ([]model.MenuItemRow, error)

	// MenuCategories returns all menu category rows ordered by id.
	MenuCategories(ctx context.Context) ([]model.Category, error)
}
