package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/basketd/internal/logger"
	"github.com/dtroode/basketd/internal/model"
)

// Resetter wipes the store and reloads fixture data.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Pinger checks that the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// System handles operational endpoints.
type System struct {
	errorResponder
	resetter Resetter
	pinger   Pinger
	logger   *logger.Logger
}

// NewSystem creates a new System handler. resetter may be nil when reset is disabled.
func NewSystem(resetter Resetter, pinger Pinger, logger *logger.Logger, verbose bool) *System {
	return &System{
		errorResponder: errorResponder{verbose: verbose},
		resetter:       resetter,
		pinger:         pinger,
		logger:         logger,
	}
}

// Reset wipes and reseeds the database.
func (h *System) Reset(w http.ResponseWriter, r *http.Request) {
	if h.resetter == nil {
		http.NotFound(w, r)
		return
	}

	if err := h.resetter.Reset(r.Context()); err != nil {
		h.logger.Error("System handler: database reset failed", "error", err.Error())
		h.handleError(w, err)
		return
	}

	h.logger.Warn("System handler: database reset to fixtures")
	writeText(w, http.StatusOK, "Done.")
}

// Health reports whether the store answers.
func (h *System) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		h.logger.Error("System handler: store ping failed", "error", err.Error())
		http.Error(w, "Unavailable", http.StatusServiceUnavailable)
		return
	}

	writeText(w, http.StatusOK, "OK")
}

func isNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
