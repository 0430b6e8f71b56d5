package smoke

import (
	"encoding/json"
	"fmt"
)

// Check verifies one endpoint. Body is the raw response payload of a
// 200 response; a non-nil return fails the run.
type Check struct {
	Path   string
	Verify func(body []byte) error
}

// Checks lists every public endpoint with its shape verification.
func Checks() []Check {
	return []Check{
		{Path: "/health", Verify: verifyStatusOK},
		{Path: "/db-health", Verify: verifyStatusOK},
		{Path: "/users", Verify: verifyArray},
		{Path: "/images", Verify: verifyArray},
		{Path: "/reviews", Verify: verifyArray},
		{Path: "/menu-items", Verify: verifyArray},
		{Path: "/menu-categories", Verify: verifyArray},
		{Path: "/faqs", Verify: verifyFAQTree},
		{Path: "/menu", Verify: verifyMenuTree},
	}
}

func verifyStatusOK(body []byte) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if resp.Status != "OK" {
		return fmt.Errorf("status %q, want OK", resp.Status)
	}
	return nil
}

func verifyArray(body []byte) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("expected a JSON array: %w", err)
	}
	return nil
}

func verifyFAQTree(body []byte) error {
	var tree struct {
		Categories []struct {
			Name  string            `json:"name"`
			Items []json.RawMessage `json:"items"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(body, &tree); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if tree.Categories == nil {
		return fmt.Errorf("categories missing")
	}
	for _, c := range tree.Categories {
		if c.Items == nil {
			return fmt.Errorf("category %q has null items", c.Name)
		}
	}
	return nil
}

func verifyMenuTree(body []byte) error {
	var tree struct {
		Categories []struct {
			Name  string `json:"name"`
			Slug  string `json:"slug"`
			Items []struct {
				Image    string `json:"image"`
				Title    string `json:"title"`
				Price    string `json:"price"`
				Currency string `json:"currency"`
			} `json:"items"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(body, &tree); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if tree.Categories == nil {
		return fmt.Errorf("categories missing")
	}
	for _, c := range tree.Categories {
		if c.Items == nil {
			return fmt.Errorf("category %q has null items", c.Name)
		}
		for _, item := range c.Items {
			// The shaping defaults guarantee these never come back empty.
			if item.Image == "" || item.Currency == "" {
				return fmt.Errorf("item %q in %q leaked an empty default", item.Title, c.Name)
			}
		}
	}
	return nil
}
