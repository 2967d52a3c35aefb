package item

import (
	"context"
	"errors"

	"itemshare/domain"
	"itemshare/internal/imaging"
	"itemshare/pkg/httperror"
)

type CreateItemHandler struct {
	intake    *Intake
	validator *Validator
}

// CreateItemRequest accepts JSON with a data URI image, or a multipart form
// whose "image" part is a file.
type CreateItemRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Category    string `json:"category" form:"category"`
	Owner       string `json:"owner" form:"owner"`
	Image       string `json:"image" form:"image"`
}

type CreateItemResponse struct {
	Item domain.Item `json:"item"`
}

func NewCreateItemHandler(intake *Intake, validator *Validator) *CreateItemHandler {
	return &CreateItemHandler{
		intake:    intake,
		validator: validator,
	}
}

func (h CreateItemHandler) Handle(ctx context.Context, req *CreateItemRequest) (*CreateItemResponse, error) {
	image := req.Image
	if uploaded, ok, err := h.uploadedImage(ctx); err != nil {
		return nil, err
	} else if ok {
		image = uploaded
	}

	item, err := h.intake.Submit(ctx, domain.Draft{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Owner:       req.Owner,
		Image:       image,
	})
	if err != nil {
		return nil, toHTTPError("item.create", err)
	}

	return &CreateItemResponse{
		Item: item,
	}, nil
}

func (h CreateItemHandler) uploadedImage(ctx context.Context) (string, bool, error) {
	c, ok := fiberContext(ctx)
	if !ok {
		return "", false, nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		// not multipart, or no file part: fall back to the image field
		return "", false, nil
	}

	if file.Size > int64(h.validator.MaxImageBytes()) {
		return "", false, imageError(imaging.ErrTooLarge)
	}

	fileReader, err := file.Open()
	if err != nil {
		return "", false, httperror.InternalServerError("item.create.file_open_error", "Failed to open uploaded file", err.Error())
	}
	defer fileReader.Close()

	uri, err := imaging.Ingest(fileReader, h.validator.MaxImageBytes())
	if err != nil {
		return "", false, imageError(err)
	}

	return uri, true, nil
}

func imageError(err error) error {
	rule := "image"
	message := "is not a supported image"
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		rule, message = "imagesize", "exceeds the maximum image size"
	case errors.Is(err, imaging.ErrEmpty):
		rule, message = "notblank", "is required"
	case !errors.Is(err, imaging.ErrUnsupportedFormat):
		return httperror.InternalServerError("item.create.file_read_error", "Failed to read uploaded file", err.Error())
	}

	return httperror.BadRequest(
		"item.create.validation_failed",
		"Validation failed for the request",
		[]domain.FieldError{{Field: "image", Rule: rule, Message: message}},
	)
}
