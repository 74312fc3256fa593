package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Error kinds exposed to clients.
const (
	kindValidation        = "validation"
	kindNotFound          = "not_found"
	kindConflict          = "conflict"
	kindInvalidTransition = "invalid_transition"
	kindNoCapacity        = "no_capacity"
	kindUpstream          = "upstream"
	kindInternal          = "internal"
)

// writeError maps a domain error to its HTTP status and uniform body.
// Unclassified errors become opaque 500s so internals never leak.
func writeError(ctx echo.Context, err error) error {
	status, kind := classify(err)

	message := err.Error()
	if kind == kindInternal {
		message = "internal server error"
	}

	return ctx.JSON(status, ErrorResponse{
		Status:  "error",
		Kind:    kind,
		Message: message,
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, kindValidation
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, kindNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, kindInvalidTransition
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, kindConflict
	case errors.Is(err, errs.ErrNoCapacity):
		return http.StatusConflict, kindNoCapacity
	case errors.Is(err, errs.ErrUpstreamTimeout), errors.Is(err, errs.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, kindUpstream
	default:
		return http.StatusInternalServerError, kindInternal
	}
}
