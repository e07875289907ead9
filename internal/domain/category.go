package domain

import (
	"context"
	"unicode"
)

// Category is a user-owned expense category. The id is assigned by the
// backend on creation.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DisplayName returns the category name with the first letter capitalized,
// which is how category names are presented.
func (c *Category) DisplayName() string {
	if c == nil || c.Name == "" {
		return ""
	}
	runes := []rune(c.Name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CategoryAPI is the category surface of the remote backend. Every call
// carries the bearer token of the current session.
type CategoryAPI interface {
	List(ctx context.Context, token string) ([]*Category, error)
	Create(ctx context.Context, token, name string) (*Category, error)
	Delete(ctx context.Context, token, id string) error
}
