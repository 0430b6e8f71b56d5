// Package catalog turns flat, denormalized query rows into the nested
// category trees served by the FAQ and menu endpoints.
//
// Both builders follow the same contract: rows are consumed in input
// order, a category is created on its first occurrence (so output
// order equals first-seen order), and items keep their row order
// within a category. The builders are pure; they validate nothing and
// never fail.
package catalog

import (
	"strings"

	"github.com/mzahradnik/bistro/internal/domain/model"
)

// Fixed fallbacks substituted for null item columns in the grouped
// menu view.
const (
	DefaultImage    = "/images/menu/placeholder.png"
	DefaultCurrency = "$"
	DefaultRating   = 5
)

// FAQTree is the response shape of the FAQ listing.
type FAQTree struct {
	Categories []FAQCategory `json:"categories"`
}

// FAQCategory is one group of FAQ entries.
type FAQCategory struct {
	Name  string     `json:"name"`
	Items []FAQEntry `json:"items"`
}

// FAQEntry is a single question/answer pair.
type FAQEntry struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// MenuTree is the response shape of the grouped menu listing.
type MenuTree struct {
	Categories []MenuCategory `json:"categories"`
}

// MenuCategory is one menu section with its ordered items. Items is
// always non-nil so a childless category serializes as "items": [].
type MenuCategory struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Items       []MenuItem `json:"items"`
}

// MenuItem is a single dish in the grouped menu view. Badge is
// omitted entirely when the row carried none.
type MenuItem struct {
	Image    string  `json:"image"`
	Title    string  `json:"title"`
	Price    string  `json:"price"`
	Currency string  `json:"currency"`
	Rating   float64 `json:"rating"`
	Text     string  `json:"text"`
	Badge    string  `json:"badge,omitempty"`
}

// BuildFAQTree groups FAQ rows by category id, preserving first-seen
// category order and row order within each category.
func BuildFAQTree(rows []model.FAQRow) FAQTree {
	tree := FAQTree{Categories: []FAQCategory{}}
	index := make(map[int64]int, len(rows))

	for _, row := range rows {
		i, ok := index[row.CategoryID]
		if !ok {
			i = len(tree.Categories)
			index[row.CategoryID] = i
			tree.Categories = append(tree.Categories, FAQCategory{
				Name:  row.CategoryName,
				Items: []FAQEntry{},
			})
		}
		tree.Categories[i].Items = append(tree.Categories[i].Items, FAQEntry{
			Title: row.Title,
			Text:  row.Text,
		})
	}
	return tree
}

// BuildMenuTree groups left-joined menu rows by category id. A row
// with a null item id contributes only its category; item fields fall
// back to the package defaults (overridable via options) at
// construction time so none of image, currency, or rating leak a null
// into the output.
func BuildMenuTree(rows []model.MenuRow, opts ...Option) MenuTree {
	cfg := defaults()
	for _, opt := range opts {
		opt(&cfg)
	}

	tree := MenuTree{Categories: []MenuCategory{}}
	index := make(map[int64]int, len(rows))

	for _, row := range rows {
		i, ok := index[row.CategoryID]
		if !ok {
			i = len(tree.Categories)
			index[row.CategoryID] = i
			tree.Categories = append(tree.Categories, MenuCategory{
				Name:        row.CategoryName,
				Slug:        row.CategorySlug,
				Description: row.CategoryDescription,
				Items:       []MenuItem{},
			})
		}
		if !row.HasItem() {
			continue
		}
		tree.Categories[i].Items = append(tree.Categories[i].Items, buildItem(row, cfg))
	}
	return tree
}

func buildItem(row model.MenuRow, cfg config) MenuItem {
	item := MenuItem{
		Image:    cfg.image,
		Title:    stringOr(row.ItemTitle, ""),
		Price:    stringOr(row.Price, ""),
		Currency: cfg.currency,
		Rating:   cfg.rating,
		Text:     stringOr(row.ItemDescription, ""),
	}
	if row.Image != nil {
		item.Image = *row.Image
	}
	if row.Currency != nil {
		item.Currency = *row.Currency
	}
	if row.Rating != nil {
		item.Rating = *row.Rating
	}
	if row.Badge != nil {
		item.Badge = DecodeEntities(*row.Badge)
	}
	return item
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// entityReplacer maps the HTML entities seen in badge labels back to
// literal characters, including the Unicode-escaped angle forms some
// editors store instead of &lt;/&gt;.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
	`\u003c`, "<",
	`\u003e`, ">",
)

// DecodeEntities restores HTML-entity-escaped text to literal
// characters. Plain text passes through unchanged.
func DecodeEntities(s string) string {
	return entityReplacer.Replace(s)
}
