package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dtroode/basketd/internal/model"
)

const (
	fieldProductRef = "product_ref"
	fieldProductQt  = "product_qt"
)

// parseItem parses the raw item fields. It reports malformed fields only; the range of
// the quantity is checked after the product lookup.
func parseItem(raw model.RawItem) (productID int64, quantity int, err error) {
	productID, err = parseField(fieldProductRef, raw.ProductRef)
	if err != nil {
		return 0, 0, err
	}

	qt, err := parseField(fieldProductQt, raw.Quantity)
	if err != nil {
		return 0, 0, err
	}
	if qt > int64(maxQuantity) || qt < int64(-maxQuantity) {
		return 0, 0, &model.ItemFieldError{Field: fieldProductQt, Value: raw.Quantity, Reason: model.FieldMalformed}
	}

	return productID, int(qt), nil
}

// maxQuantity matches the INT column that will hold quantities.
const maxQuantity = 1<<31 - 1

func parseField(name, value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, &model.ItemFieldError{Field: name, Reason: model.FieldMissing}
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &model.ItemFieldError{Field: name, Value: value, Reason: model.FieldMalformed}
	}

	return n, nil
}

// validateItem parses raw and checks it inside tx: malformed fields and non-positive
// quantities are model.ErrInvalidItem, a well-formed but unknown product is
// model.ErrProductNotFound.
func validateItem(ctx context.Context, tx model.BasketTx, raw model.RawItem) (productID int64, quantity int, err error) {
	productID, quantity, err = parseItem(raw)
	if err != nil {
		return 0, 0, err
	}

	exists, err := tx.ProductExists(ctx, productID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to check product %d: %w", productID, err)
	}
	if !exists {
		return 0, 0, model.ErrProductNotFound
	}

	if quantity <= 0 {
		return 0, 0, &model.ItemFieldError{Field: fieldProductQt, Value: strconv.Itoa(quantity), Reason: model.FieldNotPositive}
	}

	return productID, quantity, nil
}
