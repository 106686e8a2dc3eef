package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dtroode/basketd/internal/logger"
	"github.com/dtroode/basketd/internal/model"
)

// BasketService defines business operations for baskets.
type BasketService interface {
	List(ctx context.Context) ([]model.BasketSummary, error)
	Create(ctx context.Context, ownerID int64) (int64, error)
	AddItem(ctx context.Context, ownerID, basketID int64, raw model.RawItem) error
}

const maxFormBytes = 64 << 10

// Basket handles HTTP endpoints for baskets.
type Basket struct {
	errorResponder
	basketService  BasketService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewBasket creates a new Basket handler.
func NewBasket(basketService BasketService, contextManager model.ContextManager, logger *logger.Logger, verbose bool) *Basket {
	return &Basket{
		errorResponder: errorResponder{verbose: verbose},
		basketService:  basketService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type basketResponse struct {
	BID   int64  `json:"bid"`
	Email string `json:"email"`
	UID   int64  `json:"uid"`
}

// List writes every basket with its owner as JSON.
func (h *Basket) List(w http.ResponseWriter, r *http.Request) {
	baskets, err := h.basketService.List(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	resp := make([]basketResponse, 0, len(baskets))
	for _, b := range baskets {
		resp = append(resp, basketResponse{BID: b.ID, Email: b.OwnerEmail, UID: b.OwnerID})
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// Create opens a basket for the authenticated caller and points Location at it.
func (h *Basket) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		h.handleError(w, model.ErrUnauthenticated)
		return
	}

	basketID, err := h.basketService.Create(r.Context(), userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/baskets/%d", basketID))
	writeText(w, http.StatusCreated, "OK")
}

// AddItem appends the posted product_ref/product_qt to the basket in the path.
func (h *Basket) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		h.handleError(w, model.ErrUnauthenticated)
		return
	}

	basketID, err := strconv.ParseInt(mux.Vars(r)["bid"], 10, 64)
	if err != nil {
		// Out of range ids cannot name a basket of the caller.
		h.handleError(w, model.ErrBasketNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := parseForm(r); err != nil {
		h.logger.Debug("Basket handler: unreadable form", "error", err.Error())
		h.handleError(w, model.ErrInvalidItem)
		return
	}

	raw := model.RawItem{
		ProductRef: r.PostForm.Get("product_ref"),
		Quantity:   r.PostForm.Get("product_qt"),
	}

	if err := h.basketService.AddItem(r.Context(), userID, basketID, raw); err != nil {
		h.handleError(w, err)
		return
	}

	writeText(w, http.StatusCreated, "OK")
}

// parseForm fills r.PostForm from an urlencoded or multipart body.
// ParseMultipartForm drops ParseForm errors for non-multipart bodies, so
// ParseForm runs first on its own.
func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, logger *logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", "error", err.Error())
	}
}
