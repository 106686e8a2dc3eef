package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/basketd/internal/model"
)

// errorResponder writes the status and body matching an error.
// With verbose set, 5xx bodies carry the underlying error.
type errorResponder struct {
	verbose bool
}

func (e errorResponder) handleError(w http.ResponseWriter, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError && e.verbose {
		msg = msg + ": " + err.Error()
	}
	http.Error(w, msg, status)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, "Credentials required"
	case errors.Is(err, model.ErrBasketNotFound):
		return http.StatusNotFound, "No such basket"
	case errors.Is(err, model.ErrProductNotFound):
		return http.StatusNotFound, "No such product"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, model.ErrInvalidItem):
		return http.StatusBadRequest, model.ErrInvalidItem.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
