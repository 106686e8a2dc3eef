package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/basketd/internal/logger"
	"github.com/dtroode/basketd/internal/model"
)

// Basket coordinates basket creation and item insertion. Every state change runs in a
// single store transaction; the caller must already be authenticated.
type Basket struct {
	basketStore model.BasketStore
	logger      *logger.Logger
}

func NewBasket(basketStore model.BasketStore, logger *logger.Logger) *Basket {
	return &Basket{
		basketStore: basketStore,
		logger:      logger,
	}
}

// List returns every basket with its owner.
func (b *Basket) List(ctx context.Context) ([]model.BasketSummary, error) {
	baskets, err := b.basketStore.List(ctx)
	if err != nil {
		b.logger.Error("Basket service: failed to list baskets", "error", err.Error())
		return nil, fmt.Errorf("failed to list baskets: %w", err)
	}

	return baskets, nil
}

// Create opens a new basket owned by ownerID and returns its id.
func (b *Basket) Create(ctx context.Context, ownerID int64) (int64, error) {
	b.logger.Debug("Basket service: creating basket", "uid", ownerID)

	var basketID int64
	err := b.basketStore.WithinTx(ctx, func(tx model.BasketTx) error {
		id, err := tx.Create(ctx, ownerID)
		if err != nil {
			return err
		}
		basketID = id
		return nil
	})
	if err != nil {
		b.logger.Error("Basket service: failed to create basket",
			"uid", ownerID,
			"error", err.Error())
		return 0, fmt.Errorf("failed to create basket: %w", err)
	}

	b.logger.Info("Basket service: basket created",
		"uid", ownerID,
		"bid", basketID)

	return basketID, nil
}

// AddItem appends a product line to a basket owned by ownerID.
//
// Within one transaction it checks ownership, validates the item, and inserts the line.
// Errors: model.ErrBasketNotFound when the basket is missing or foreign,
// model.ErrInvalidItem for malformed or non-positive fields, model.ErrProductNotFound
// for an unknown product, anything else is a store failure.
func (b *Basket) AddItem(ctx context.Context, ownerID, basketID int64, raw model.RawItem) error {
	b.logger.Debug("Basket service: adding item",
		"uid", ownerID,
		"bid", basketID,
		"product_ref", raw.ProductRef,
		"product_qt", raw.Quantity)

	err := b.basketStore.WithinTx(ctx, func(tx model.BasketTx) error {
		owned, err := tx.IsOwnedBy(ctx, basketID, ownerID)
		if err != nil {
			return fmt.Errorf("failed to check basket ownership: %w", err)
		}
		if !owned {
			return model.ErrBasketNotFound
		}

		productID, quantity, err := validateItem(ctx, tx, raw)
		if err != nil {
			return err
		}

		return tx.AddContent(ctx, model.BasketContent{
			BasketID:  basketID,
			ProductID: productID,
			Quantity:  quantity,
		})
	})
	if err != nil {
		if isRejection(err) {
			b.logger.Info("Basket service: item rejected",
				"uid", ownerID,
				"bid", basketID,
				"reason", err.Error())
			return err
		}
		b.logger.Error("Basket service: failed to add item",
			"uid", ownerID,
			"bid", basketID,
			"error", err.Error())
		return fmt.Errorf("failed to add item: %w", err)
	}

	b.logger.Info("Basket service: item added",
		"uid", ownerID,
		"bid", basketID,
		"product_ref", raw.ProductRef)

	return nil
}

func isRejection(err error) bool {
	return errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidItem)
}
