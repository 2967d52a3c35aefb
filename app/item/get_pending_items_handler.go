package item

import (
	"context"

	"itemshare/domain"
)

type GetPendingItemsHandler struct {
	moderation *Moderation
}

func NewGetPendingItemsHandler(moderation *Moderation) *GetPendingItemsHandler {
	return &GetPendingItemsHandler{
		moderation: moderation,
	}
}

type GetPendingItemsRequest struct{}

type GetPendingItemsResponse struct {
	Items      []domain.Item `json:"items"`
	TotalItems int           `json:"totalItems"`
}

func (h GetPendingItemsHandler) Handle(ctx context.Context, req *GetPendingItemsRequest) (*GetPendingItemsResponse, error) {
	items, err := h.moderation.Pending(ctx)
	if err != nil {
		return nil, toHTTPError("item.pending", err)
	}

	return &GetPendingItemsResponse{
		Items:      items,
		TotalItems: len(items),
	}, nil
}
