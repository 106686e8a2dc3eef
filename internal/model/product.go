package model

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductStore defines persistence operations for the product catalog.
type ProductStore interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
}

// Product is a catalog entry.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}
