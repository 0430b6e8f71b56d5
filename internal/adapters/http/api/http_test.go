package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mzahradnik/bistro/internal/adapters/http/api"
	"github.com/mzahradnik/bistro/internal/domain/catalog"
	"github.com/mzahradnik/bistro/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies with canned data and a
// switchable failure.
type mockDeps struct {
	pingErr error
	failAll error

	users  []model.User
	images []model.Image
	revs   []model.Review
	items  []model.MenuItemRow
	cats   []model.Category
	faqs   catalog.FAQTree
	menu   catalog.MenuTree
}

func (m *mockDeps) PingDB(context.Context) error { return m.pingErr }

func (m *mockDeps) Users(context.Context) ([]model.User, error) {
	return m.users, m.failAll
}

func (m *mockDeps) Images(context.Context) ([]model.Image, error) {
	return m.images, m.failAll
}

func (m *mockDeps) Reviews(context.Context) ([]model.Review, error) {
	return m.revs, m.failAll
}

func (m *mockDeps) MenuItems(context.Context) ([]model.MenuItemRow, error) {
	return m.items, m.failAll
}

func (m *mockDeps) MenuCategories(context.Context) ([]model.Category, error) {
	return m.cats, m.failAll
}

func (m *mockDeps) FAQTree(context.Context) (catalog.FAQTree, error) {
	return m.faqs, m.failAll
}

func (m *mockDeps) MenuTree(context.Context) (catalog.MenuTree, error) {
	return m.menu, m.failAll
}

func newTestServer(deps *mockDeps, prefix string) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux, prefix)
	return httptest.NewServer(api.RequestIDMiddleware(mux))
}

func getJSON(t *testing.T, url string, out any) (*http.Response, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp, nil
}

func TestHealthEndpoints(t *testing.T) {
	Convey("Given a running API server", t, func() {
		deps := &mockDeps{}
		ts := newTestServer(deps, "")
		defer ts.Close()

		Convey("When GET /health", func() {
			var body map[string]string
			resp, err := getJSON(t, ts.URL+"/health", &body)

			Convey("Then it reports OK without touching the database", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["status"], ShouldEqual, "OK")
			})
		})

		Convey("When GET /db-health with a healthy pool", func() {
			var body map[string]string
			resp, err := getJSON(t, ts.URL+"/db-health", &body)

			Convey("Then it reports OK with a message", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["status"], ShouldEqual, "OK")
				So(body["message"], ShouldNotBeEmpty)
			})
		})

		Convey("When GET /db-health with a failing pool", func() {
			deps.pingErr = errors.New("connection refused")
			var body map[string]string
			resp, err := getJSON(t, ts.URL+"/db-health", &body)

			Convey("Then it returns 500 with the status/message body", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusInternalServerError)
				So(body["status"], ShouldEqual, "ERROR")
				So(body["message"], ShouldContainSubstring, "connection refused")
			})
		})
	})
}

func TestListingEndpoints(t *testing.T) {
	Convey("Given a server with canned data", t, func() {
		avatar := "/images/avatars/lena.png"
		deps := &mockDeps{
			users: []model.User{
				{ID: 1, Email: "marta@bistro.example", Username: "marta"},
			},
			images: []model.Image{
				{ID: 1, Title: "Terrace", Src: "/images/gallery/terrace.jpg", Alt: "terrace"},
			},
			revs: []model.Review{
				{ID: 1, Author: "Lena K.", Avatar: &avatar, Rating: 5, Text: "Great.", Date: "2025-11-02"},
			},
			cats: []model.Category{
				{ID: 1, Name: "Pizza", Slug: "pizza", Description: "Wood-fired"},
			},
		}
		ts := newTestServer(deps, "")
		defer ts.Close()

		Convey("When GET /users", func() {
			var users []model.User
			resp, err := getJSON(t, ts.URL+"/users", &users)

			Convey("Then it returns the user rows", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(users, ShouldHaveLength, 1)
				So(users[0].Username, ShouldEqual, "marta")
			})
		})

		Convey("When GET /images", func() {
			var images []model.Image
			resp, err := getJSON(t, ts.URL+"/images", &images)

			Convey("Then it returns the image rows", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(images, ShouldHaveLength, 1)
			})
		})

		Convey("When GET /reviews", func() {
			var revs []model.Review
			resp, err := getJSON(t, ts.URL+"/reviews", &revs)

			Convey("Then it returns the review rows", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(revs, ShouldHaveLength, 1)
				So(revs[0].Author, ShouldEqual, "Lena K.")
			})
		})

		Convey("When GET /menu-categories", func() {
			var cats []model.Category
			resp, err := getJSON(t, ts.URL+"/menu-categories", &cats)

			Convey("Then it returns the category rows", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(cats[0].Slug, ShouldEqual, "pizza")
			})
		})

		Convey("When a listing has no rows", func() {
			empty := &mockDeps{}
			ets := newTestServer(empty, "")
			defer ets.Close()

			resp, err := http.Get(ets.URL + "/users")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the body is an empty array, not null", func() {
				var raw json.RawMessage
				So(json.NewDecoder(resp.Body).Decode(&raw), ShouldBeNil)
				So(string(raw), ShouldEqual, "[]")
			})
		})

		Convey("When the query fails", func() {
			deps.failAll = errors.New("relation does not exist")
			var body map[string]string
			resp, err := getJSON(t, ts.URL+"/users", &body)

			Convey("Then it returns 500 with the error text", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusInternalServerError)
				So(body["error"], ShouldContainSubstring, "relation does not exist")
			})
		})

		Convey("When using a non-GET method", func() {
			req, err := http.NewRequest(http.MethodPost, ts.URL+"/users", nil)
			So(err, ShouldBeNil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the route is not found", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestGroupedEndpoints(t *testing.T) {
	Convey("Given a server with grouped trees", t, func() {
		deps := &mockDeps{
			faqs: catalog.BuildFAQTree([]model.FAQRow{
				{ID: 1, Title: "How do I book?", Text: "Call us.", CategoryID: 1, CategoryName: "Reservations"},
			}),
			menu: catalog.MenuTree{Categories: []catalog.MenuCategory{
				{Name: "Desserts", Slug: "desserts", Items: []catalog.MenuItem{}},
			}},
		}
		ts := newTestServer(deps, "")
		defer ts.Close()

		Convey("When GET /faqs", func() {
			var tree catalog.FAQTree
			resp, err := getJSON(t, ts.URL+"/faqs", &tree)

			Convey("Then the grouped shape comes back", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(tree.Categories, ShouldHaveLength, 1)
				So(tree.Categories[0].Name, ShouldEqual, "Reservations")
				So(tree.Categories[0].Items, ShouldHaveLength, 1)
			})
		})

		Convey("When GET /menu with a childless category", func() {
			resp, err := http.Get(ts.URL + "/menu")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then items serialize as an empty array", func() {
				var raw struct {
					Categories []struct {
						Items json.RawMessage `json:"items"`
					} `json:"categories"`
				}
				So(json.NewDecoder(resp.Body).Decode(&raw), ShouldBeNil)
				So(raw.Categories, ShouldHaveLength, 1)
				So(string(raw.Categories[0].Items), ShouldEqual, "[]")
			})
		})
	})
}

func TestRoutePrefix(t *testing.T) {
	Convey("Given a server mounted with the /api prefix", t, func() {
		deps := &mockDeps{users: []model.User{{ID: 1, Email: "a@b.c", Username: "a"}}}
		ts := newTestServer(deps, "/api")
		defer ts.Close()

		Convey("Then both the bare and prefixed routes answer", func() {
			for _, path := range []string{"/users", "/api/users"} {
				var users []model.User
				resp, err := getJSON(t, ts.URL+path, &users)
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(users, ShouldHaveLength, 1)
			}
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a server wrapped with the request-id middleware", t, func() {
		ts := newTestServer(&mockDeps{}, "")
		defer ts.Close()

		Convey("When the client sends no id", func() {
			resp, err := http.Get(ts.URL + "/health")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then one is generated", func() {
				So(resp.Header.Get(api.RequestIDHeader), ShouldNotBeEmpty)
			})
		})

		Convey("When the client supplies an id", func() {
			req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
			So(err, ShouldBeNil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then it is echoed back", func() {
				So(resp.Header.Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})
	})
}
