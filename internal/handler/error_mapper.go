package handler

import (
	"errors"
	"net/http"

	"github.com/forgo/chapel/internal/model"
	"github.com/forgo/chapel/internal/repository"
)

// maxStoreErrorDetail bounds how much of a driver message reaches the client
const maxStoreErrorDetail = 200

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var pd *model.ProblemDetails
	var verr *model.ValidationError
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &pd):
		return pd

	// ===== Validation Errors → 422 =====
	case errors.As(err, &verr):
		return model.NewValidationError(verr.Fields)

	// ===== Malformed Input → 400 / 413 =====
	case errors.As(err, &maxErr):
		return model.NewPayloadTooLargeError(maxErr.Limit)
	case errors.Is(err, ErrInvalidBody):
		return model.NewBadRequestError(err.Error())

	// ===== Store Errors → 500 =====
	case errors.Is(err, repository.ErrStoreUnavailable):
		return model.NewStoreUnavailableError(model.Truncate(err.Error(), maxStoreErrorDetail))
	case errors.Is(err, repository.ErrStoreRead):
		return model.NewStoreReadError(model.Truncate(err.Error(), maxStoreErrorDetail))
	case errors.Is(err, repository.ErrStoreWrite):
		return model.NewStoreWriteError(model.Truncate(err.Error(), maxStoreErrorDetail))

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
