package model

import "context"

// BasketStore defines persistence operations for baskets.
type BasketStore interface {
	List(ctx context.Context) ([]BasketSummary, error)
	// WithinTx runs fn inside a single transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx BasketTx) error) error
}

// BasketTx is the set of basket operations available inside one transaction.
type BasketTx interface {
	Create(ctx context.Context, ownerID int64) (int64, error)
	// IsOwnedBy reports whether the basket exists and belongs to ownerID.
	IsOwnedBy(ctx context.Context, basketID, ownerID int64) (bool, error)
	ProductExists(ctx context.Context, productID int64) (bool, error)
	AddContent(ctx context.Context, content BasketContent) error
}

// BasketSummary is a basket joined with its owner.
type BasketSummary struct {
	ID         int64
	OwnerID    int64
	OwnerEmail string
}

// BasketContent is one line of a basket. Repeated adds of the same product append rows.
type BasketContent struct {
	BasketID  int64
	ProductID int64
	Quantity  int
}

// RawItem carries the unparsed item fields of an add-to-basket request.
type RawItem struct {
	ProductRef string
	Quantity   string
}
