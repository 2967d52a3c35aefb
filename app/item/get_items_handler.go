package item

import (
	"context"

	"itemshare/domain"
)

type GetItemsHandler struct {
	catalog *Catalog
}

func NewGetItemsHandler(catalog *Catalog) *GetItemsHandler {
	return &GetItemsHandler{
		catalog: catalog,
	}
}

type GetItemsRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}

type GetItemsResponse struct {
	Items      []domain.Item `json:"items"`
	TotalItems int           `json:"totalItems"`
}

func (h GetItemsHandler) Handle(ctx context.Context, req *GetItemsRequest) (*GetItemsResponse, error) {
	items, err := h.catalog.List(ctx, Query{
		Search:   req.Search,
		Category: req.Category,
	})
	if err != nil {
		return nil, toHTTPError("item.index", err)
	}

	return &GetItemsResponse{
		Items:      items,
		TotalItems: len(items),
	}, nil
}
