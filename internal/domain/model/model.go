// Package model declares the typed row records scanned from the
// content database. Each type mirrors the column list of exactly one
// fixed query; nullable columns use pointer fields so that absence
// survives the trip from SQL to JSON shaping.
package model

// User is a row from the users listing.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Image is a full row from the gallery images listing.
type Image struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Src   string `json:"src"`
	Alt   string `json:"alt"`
}

// Review is a full row from the reviews listing. Avatar is nullable.
type Review struct {
	ID     int64   `json:"id"`
	Author string  `json:"author"`
	Avatar *string `json:"avatar"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
	Date   string  `json:"date"`
}

// Category is a row from the menu categories listing.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// FAQRow is one FAQ entry with its category denormalized via join.
// Every FAQ row carries an item; the category side is never null.
type FAQRow struct {
	ID           int64
	Title        string
	Text         string
	CategoryID   int64
	CategoryName string
}

// MenuRow is one row of the left-joined category/item listing. The
// item side is nullable: a category with no items produces a single
// row whose ItemID is nil.
type MenuRow struct {
	CategoryID          int64
	CategoryName        string
	CategorySlug        string
	CategoryDescription string

	ItemID          *int64
	ItemTitle       *string
	Image           *string
	Price           *string
	ItemDescription *string
	Badge           *string
	Rating          *float64
	Currency        *string
}

// HasItem reports whether the row carries an item, i.e. the left join
// matched at least one menu item for the category.
func (r MenuRow) HasItem() bool {
	return r.ItemID != nil
}

// MenuItemRow is a flat row from the ungrouped menu items listing.
// Nulls pass through untouched; defaulting is a grouped-view concern.
type MenuItemRow struct {
	ID          int64    `json:"id"`
	CategoryID  int64    `json:"category_id"`
	Title       string   `json:"title"`
	Image       *string  `json:"image"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Badge       *string  `json:"badge"`
	Rating      *float64 `json:"rating"`
	Currency    *string  `json:"currency"`
}
