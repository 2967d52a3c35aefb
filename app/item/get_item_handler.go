package item

import (
	"context"

	"itemshare/domain"
)

type GetItemHandler struct {
	catalog *Catalog
}

func NewGetItemHandler(catalog *Catalog) *GetItemHandler {
	return &GetItemHandler{
		catalog: catalog,
	}
}

type GetItemRequest struct {
	ItemID string `params:"id"`
}

type GetItemResponse struct {
	Item domain.Item `json:"item"`
}

func (h GetItemHandler) Handle(ctx context.Context, req *GetItemRequest) (*GetItemResponse, error) {
	item, err := h.catalog.Get(ctx, req.ItemID)
	if err != nil {
		return nil, toHTTPError("item.show", err)
	}

	return &GetItemResponse{
		Item: item,
	}, nil
}
