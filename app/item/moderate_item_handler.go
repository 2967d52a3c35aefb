package item

import (
	"context"

	"itemshare/domain"
)

type ModerateItemRequest struct {
	ItemID string `params:"id"`
}

type ModerateItemResponse struct {
	Item domain.Item `json:"item"`
}

type ApproveItemHandler struct {
	moderation *Moderation
}

func NewApproveItemHandler(moderation *Moderation) *ApproveItemHandler {
	return &ApproveItemHandler{
		moderation: moderation,
	}
}

func (h ApproveItemHandler) Handle(ctx context.Context, req *ModerateItemRequest) (*ModerateItemResponse, error) {
	item, err := h.moderation.Approve(ctx, req.ItemID)
	if err != nil {
		return nil, toHTTPError("item.approve", err)
	}

	return &ModerateItemResponse{
		Item: item,
	}, nil
}

type RejectItemHandler struct {
	moderation *Moderation
}

func NewRejectItemHandler(moderation *Moderation) *RejectItemHandler {
	return &RejectItemHandler{
		moderation: moderation,
	}
}

func (h RejectItemHandler) Handle(ctx context.Context, req *ModerateItemRequest) (*ModerateItemResponse, error) {
	item, err := h.moderation.Reject(ctx, req.ItemID)
	if err != nil {
		return nil, toHTTPError("item.reject", err)
	}

	return &ModerateItemResponse{
		Item: item,
	}, nil
}
