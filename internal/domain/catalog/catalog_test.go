package catalog_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mzahradnik/bistro/internal/domain/catalog"
	"github.com/mzahradnik/bistro/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int64) *int64       { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestBuildFAQTree(t *testing.T) {
	Convey("Given FAQ rows spanning two categories", t, func() {
		rows := []model.FAQRow{
			{ID: 1, Title: "How do I book?", Text: "Call us.", CategoryID: 1, CategoryName: "Reservations"},
			{ID: 2, Title: "Do you deliver?", Text: "Yes.", CategoryID: 2, CategoryName: "Delivery"},
			{ID: 3, Title: "Can I cancel?", Text: "Up to 2h before.", CategoryID: 1, CategoryName: "Reservations"},
		}

		Convey("When building the tree", func() {
			tree := catalog.BuildFAQTree(rows)

			Convey("Then categories appear in first-seen order", func() {
				So(tree.Categories, ShouldHaveLength, 2)
				So(tree.Categories[0].Name, ShouldEqual, "Reservations")
				So(tree.Categories[1].Name, ShouldEqual, "Delivery")
			})

			Convey("Then items keep their row order within a category", func() {
				So(tree.Categories[0].Items, ShouldHaveLength, 2)
				So(tree.Categories[0].Items[0].Title, ShouldEqual, "How do I book?")
				So(tree.Categories[0].Items[1].Title, ShouldEqual, "Can I cancel?")
				So(tree.Categories[1].Items, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given two categories sharing a display name", t, func() {
		rows := []model.FAQRow{
			{ID: 1, Title: "a", Text: "x", CategoryID: 1, CategoryName: "General"},
			{ID: 2, Title: "b", Text: "y", CategoryID: 2, CategoryName: "General"},
		}

		Convey("Then grouping by id keeps them distinct", func() {
			tree := catalog.BuildFAQTree(rows)
			So(tree.Categories, ShouldHaveLength, 2)
		})
	})

	Convey("Given no rows", t, func() {
		tree := catalog.BuildFAQTree(nil)

		Convey("Then the categories list is empty but present", func() {
			So(tree.Categories, ShouldNotBeNil)
			So(tree.Categories, ShouldBeEmpty)
		})
	})
}

func TestBuildMenuTree(t *testing.T) {
	Convey("Given menu rows with a childless category", t, func() {
		rows := []model.MenuRow{
			{
				CategoryID: 1, CategoryName: "Pizza", CategorySlug: "pizza", CategoryDescription: "Wood fired",
				ItemID: intPtr(1), ItemTitle: strPtr("Margherita"), Price: strPtr("10"),
				ItemDescription: strPtr("Tomato and mozzarella"),
				Image:           strPtr("/images/menu/margherita.png"),
				Rating:          floatPtr(4.5), Currency: strPtr("EUR"),
			},
			{
				CategoryID: 2, CategoryName: "Desserts", CategorySlug: "desserts", CategoryDescription: "Sweet things",
			},
		}

		Convey("When building the tree", func() {
			tree := catalog.BuildMenuTree(rows)

			Convey("Then the childless category appears with an empty item list", func() {
				So(tree.Categories, ShouldHaveLength, 2)
				So(tree.Categories[1].Name, ShouldEqual, "Desserts")
				So(tree.Categories[1].Items, ShouldNotBeNil)
				So(tree.Categories[1].Items, ShouldBeEmpty)
			})

			Convey("Then the populated category carries its item verbatim", func() {
				So(tree.Categories[0].Items, ShouldHaveLength, 1)
				item := tree.Categories[0].Items[0]
				So(item.Title, ShouldEqual, "Margherita")
				So(item.Price, ShouldEqual, "10")
				So(item.Image, ShouldEqual, "/images/menu/margherita.png")
				So(item.Rating, ShouldEqual, 4.5)
				So(item.Currency, ShouldEqual, "EUR")
			})

			Convey("Then the empty item list serializes as an array, not null", func() {
				raw, err := json.Marshal(tree)
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, `"items":[]`)
			})
		})
	})

	Convey("Given an item row with null image, currency, and rating", t, func() {
		rows := []model.MenuRow{
			{
				CategoryID: 1, CategoryName: "Soups", CategorySlug: "soups",
				ItemID: intPtr(7), ItemTitle: strPtr("Goulash"), Price: strPtr("8"),
				ItemDescription: strPtr("Beef and paprika"),
			},
		}

		Convey("When building with the fixed defaults", func() {
			tree := catalog.BuildMenuTree(rows)
			item := tree.Categories[0].Items[0]

			Convey("Then each null column gets its fallback", func() {
				So(item.Image, ShouldEqual, catalog.DefaultImage)
				So(item.Currency, ShouldEqual, catalog.DefaultCurrency)
				So(item.Rating, ShouldEqual, catalog.DefaultRating)
			})
		})

		Convey("When building with overridden defaults", func() {
			tree := catalog.BuildMenuTree(rows,
				catalog.WithPlaceholderImage("/img/none.png"),
				catalog.WithDefaultCurrency("Kč"),
				catalog.WithDefaultRating(3),
			)
			item := tree.Categories[0].Items[0]

			Convey("Then the overrides take effect", func() {
				So(item.Image, ShouldEqual, "/img/none.png")
				So(item.Currency, ShouldEqual, "Kč")
				So(item.Rating, ShouldEqual, 3)
			})
		})
	})

	Convey("Given badge handling", t, func() {
		Convey("When the badge is absent", func() {
			rows := []model.MenuRow{
				{
					CategoryID: 1, CategoryName: "Mains", CategorySlug: "mains",
					ItemID: intPtr(1), ItemTitle: strPtr("Steak"), Price: strPtr("25"),
				},
			}
			tree := catalog.BuildMenuTree(rows)

			Convey("Then the badge key is omitted from the JSON", func() {
				raw, err := json.Marshal(tree)
				So(err, ShouldBeNil)
				So(strings.Contains(string(raw), `"badge"`), ShouldBeFalse)
			})
		})

		Convey("When the badge carries HTML entities", func() {
			rows := []model.MenuRow{
				{
					CategoryID: 1, CategoryName: "Mains", CategorySlug: "mains",
					ItemID: intPtr(1), ItemTitle: strPtr("Steak"), Price: strPtr("25"),
					Badge: strPtr("Chef&amp;apos pick &lt;hot&gt;"),
				},
			}
			tree := catalog.BuildMenuTree(rows)

			Convey("Then entities are decoded to literal characters", func() {
				So(tree.Categories[0].Items[0].Badge, ShouldEqual, "Chef&apos pick <hot>")
			})
		})
	})

	Convey("Given rows interleaving two categories", t, func() {
		rows := []model.MenuRow{
			{CategoryID: 1, CategoryName: "A", ItemID: intPtr(1), ItemTitle: strPtr("one"), Price: strPtr("1")},
			{CategoryID: 2, CategoryName: "B", ItemID: intPtr(2), ItemTitle: strPtr("two"), Price: strPtr("2")},
			{CategoryID: 1, CategoryName: "A", ItemID: intPtr(3), ItemTitle: strPtr("three"), Price: strPtr("3")},
		}

		Convey("Then group order is first-occurrence and items follow row order", func() {
			tree := catalog.BuildMenuTree(rows)
			So(tree.Categories, ShouldHaveLength, 2)
			So(tree.Categories[0].Name, ShouldEqual, "A")
			So(tree.Categories[0].Items, ShouldHaveLength, 2)
			So(tree.Categories[0].Items[0].Title, ShouldEqual, "one")
			So(tree.Categories[0].Items[1].Title, ShouldEqual, "three")
			So(tree.Categories[1].Items[0].Title, ShouldEqual, "two")
		})
	})
}

func TestDecodeEntities(t *testing.T) {
	Convey("Given entity-escaped text", t, func() {
		cases := map[string]string{
			"Fish &amp; Chips":       "Fish & Chips",
			"&quot;special&quot;":    `"special"`,
			"&lt;b&gt;new&lt;/b&gt;": "<b>new</b>",
			`\u003cspicy\u003e`:      "<spicy>",
			"plain text":             "plain text",
			"":                       "",
		}

		Convey("Then each decodes to literal characters", func() {
			for in, want := range cases {
				So(catalog.DecodeEntities(in), ShouldEqual, want)
			}
		})
	})
}
