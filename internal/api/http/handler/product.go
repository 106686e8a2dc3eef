package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dtroode/basketd/internal/logger"
	"github.com/dtroode/basketd/internal/model"
)

// CatalogService defines read operations on the product catalog.
type CatalogService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int64) (model.Product, error)
}

// Product handles HTTP endpoints for the product catalog.
type Product struct {
	errorResponder
	catalogService CatalogService
	logger         *logger.Logger
}

// NewProduct creates a new Product handler.
func NewProduct(catalogService CatalogService, logger *logger.Logger, verbose bool) *Product {
	return &Product{
		errorResponder: errorResponder{verbose: verbose},
		catalogService: catalogService,
		logger:         logger,
	}
}

type productResponse struct {
	PID   int64       `json:"pid"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{PID: p.ID, Name: p.Name, Price: json.Number(p.Price.String())}
}

// List writes the whole catalog as JSON.
func (h *Product) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.List(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// Get writes one product as JSON.
func (h *Product) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["pid"], 10, 64)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	product, err := h.catalogService.Get(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		h.handleError(w, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toProductResponse(product))
}
