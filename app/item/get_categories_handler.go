package item

import (
	"context"
)

type GetCategoriesHandler struct {
	catalog   *Catalog
	validator *Validator
}

func NewGetCategoriesHandler(catalog *Catalog, validator *Validator) *GetCategoriesHandler {
	return &GetCategoriesHandler{
		catalog:   catalog,
		validator: validator,
	}
}

type GetCategoriesRequest struct{}

type GetCategoriesResponse struct {
	// Categories feeds the catalog filter; Allowed feeds the submission form.
	Categories []string `json:"categories"`
	Allowed    []string `json:"allowed"`
}

func (h GetCategoriesHandler) Handle(ctx context.Context, req *GetCategoriesRequest) (*GetCategoriesResponse, error) {
	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		return nil, toHTTPError("category.index", err)
	}

	return &GetCategoriesResponse{
		Categories: categories,
		Allowed:    h.validator.Categories(),
	}, nil
}
