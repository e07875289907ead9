package api

import (
	"context"
	"net/http"

	"github.com/ledgerline/ledgerline-client/internal/domain"
)

// CategoryAPI implements domain.CategoryAPI over HTTP.
type CategoryAPI struct {
	client *Client
}

// NewCategoryAPI creates a CategoryAPI using the shared transport.
func NewCategoryAPI(client *Client) *CategoryAPI {
	return &CategoryAPI{client: client}
}

// List fetches all categories for the token's user.
func (a *CategoryAPI) List(ctx context.Context, token string) ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := a.client.do(ctx, http.MethodGet, "/api/categories/getCategories", token, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// Create posts a new category and returns it with its backend-assigned id.
func (a *CategoryAPI) Create(ctx context.Context, token, name string) (*domain.Category, error) {
	var category domain.Category
	err := a.client.do(ctx, http.MethodPost, "/api/categories/createCategory", token, createCategoryRequest{Name: name}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category by id.
func (a *CategoryAPI) Delete(ctx context.Context, token, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/api/categories/deleteCategory/"+id, token, nil, nil)
}
