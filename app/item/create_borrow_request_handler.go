package item

import (
	"context"
	"errors"
	"fmt"

	"itemshare/domain"
	"itemshare/pkg/httperror"

	"go.uber.org/zap"
)

type CreateBorrowRequestHandler struct {
	requests *Requests
}

func NewCreateBorrowRequestHandler(requests *Requests) *CreateBorrowRequestHandler {
	return &CreateBorrowRequestHandler{
		requests: requests,
	}
}

type CreateBorrowRequestRequest struct {
	ItemID  string `params:"id"`
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

type CreateBorrowRequestResponse struct {
	ItemID  string `json:"itemId"`
	Owner   string `json:"owner"`
	Message string `json:"message"`
}

func (h CreateBorrowRequestHandler) Handle(ctx context.Context, req *CreateBorrowRequestRequest) (*CreateBorrowRequestResponse, error) {
	item, err := h.requests.RequestBorrow(ctx, req.ItemID, BorrowRequest{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		var notFoundErr *domain.NotFoundError
		if errors.As(err, &validationErr) || errors.As(err, &notFoundErr) || errors.Is(err, domain.ErrPersistence) {
			return nil, toHTTPError("item.request", err)
		}

		zap.L().Error("Failed to deliver borrow request",
			zap.String("itemId", req.ItemID),
			zap.Error(err),
		)
		return nil, httperror.BadGateway(
			"item.request.notify_failed",
			"The request could not be forwarded to the owner",
			nil,
		)
	}

	return &CreateBorrowRequestResponse{
		ItemID:  item.ID,
		Owner:   item.Owner,
		Message: fmt.Sprintf("Request sent to %s", item.Owner),
	}, nil
}
