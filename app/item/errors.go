package item

import (
	"errors"

	"itemshare/domain"
	"itemshare/pkg/httperror"
)

// toHTTPError maps domain errors to handler errors with codes under scope,
// e.g. "item.approve.not_found".
func toHTTPError(scope string, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return httperror.BadRequest(
			scope+".validation_failed",
			"Validation failed for the request",
			validationErr.Fields,
		)
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		return httperror.NotFound(
			scope+".not_found",
			"Item not found or already handled",
			map[string]string{"id": notFoundErr.ID},
		)
	}

	var transitionErr *domain.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return httperror.Conflict(
			scope+".invalid_transition",
			"Item has already been moderated",
			map[string]string{
				"id":   transitionErr.ID,
				"from": string(transitionErr.From),
				"to":   string(transitionErr.To),
			},
		)
	}

	if errors.Is(err, domain.ErrPersistence) {
		return httperror.ServiceUnavailable(
			scope+".storage_unavailable",
			"Item storage is unavailable",
			nil,
		)
	}

	return httperror.InternalServerError(
		scope+".failed",
		"An unexpected error occurred",
		nil,
	)
}
