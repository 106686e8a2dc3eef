package service

import (
	"context"
	"fmt"

	"github.com/dtroode/basketd/internal/logger"
	"github.com/dtroode/basketd/internal/model"
)

// Catalog serves the read-only product catalog.
type Catalog struct {
	productStore model.ProductStore
	logger       *logger.Logger
}

func NewCatalog(productStore model.ProductStore, logger *logger.Logger) *Catalog {
	return &Catalog{
		productStore: productStore,
		logger:       logger,
	}
}

func (c *Catalog) List(ctx context.Context) ([]model.Product, error) {
	products, err := c.productStore.List(ctx)
	if err != nil {
		c.logger.Error("Catalog service: failed to list products", "error", err.Error())
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// Get returns one product or model.ErrProductNotFound.
func (c *Catalog) Get(ctx context.Context, id int64) (model.Product, error) {
	product, err := c.productStore.GetByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	return product, nil
}
