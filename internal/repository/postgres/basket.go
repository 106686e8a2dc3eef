package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/basketd/internal/model"
)

var (
	_ model.BasketStore = (*BasketRepository)(nil)
	_ model.BasketTx    = (*basketTx)(nil)
)

type BasketRepository struct {
	db *Connection
}

func NewBasketRepository(db *Connection) *BasketRepository {
	return &BasketRepository{
		db: db,
	}
}

func (r *BasketRepository) List(ctx context.Context) ([]model.BasketSummary, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT b.bid, a.email, a.uid
		FROM basket b
		JOIN user_account a ON a.uid = b.owner_uid
		ORDER BY b.bid`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list baskets: %w", err)
	}
	defer rows.Close()

	baskets := []model.BasketSummary{}
	for rows.Next() {
		var b model.BasketSummary
		if err := rows.Scan(&b.ID, &b.OwnerEmail, &b.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan basket: %w", err)
		}
		baskets = append(baskets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list baskets: %w", err)
	}

	return baskets, nil
}

// WithinTx begins a transaction at the configured isolation level, hands it to fn and
// commits when fn succeeds. The pooled connection is released on every path.
func (r *BasketRepository) WithinTx(ctx context.Context, fn func(tx model.BasketTx) error) (err error) {
	beginCtx, cancel := r.db.withTimeout(ctx)
	tx, err := r.db.BeginTx(beginCtx, pgx.TxOptions{IsoLevel: r.db.isoLevel})
	cancel()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}
		// Rollback must run even when ctx is already done.
		rbCtx, rbCancel := withTimeout(context.WithoutCancel(ctx), r.db.queryTimeout)
		defer rbCancel()
		if rbErr := tx.Rollback(rbCtx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("failed to roll back transaction: %w", rbErr))
		}
	}()

	if err = fn(&basketTx{tx: tx, timeout: r.db.queryTimeout}); err != nil {
		return err
	}

	commitCtx, commitCancel := r.db.withTimeout(ctx)
	defer commitCancel()
	if err = tx.Commit(commitCtx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type basketTx struct {
	tx      pgx.Tx
	timeout time.Duration
}

func (t *basketTx) Create(ctx context.Context, ownerID int64) (int64, error) {
	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO basket (owner_uid) VALUES ($1) RETURNING bid`, ownerID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create basket: %w", err)
	}

	return id, nil
}

// IsOwnedBy locks the basket row so it cannot be deleted or reassigned before commit.
func (t *basketTx) IsOwnedBy(ctx context.Context, basketID, ownerID int64) (bool, error) {
	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	const query = `SELECT 1 FROM basket WHERE bid = $1 AND owner_uid = $2 FOR SHARE`

	return t.exists(ctx, query, basketID, ownerID)
}

// ProductExists locks the product row so it cannot be deleted before commit.
func (t *basketTx) ProductExists(ctx context.Context, productID int64) (bool, error) {
	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	const query = `SELECT 1 FROM product WHERE pid = $1 FOR SHARE`

	return t.exists(ctx, query, productID)
}

// AddContent appends a basket line. The quantity is validated upstream but is not
// written: product_qt stays NULL until its persistence rules are settled.
func (t *basketTx) AddContent(ctx context.Context, content model.BasketContent) error {
	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	const query = `INSERT INTO basket_content (basket_ref, product_ref) VALUES ($1, $2)`

	if _, err := t.tx.Exec(ctx, query, content.BasketID, content.ProductID); err != nil {
		return fmt.Errorf("failed to add basket content: %w", err)
	}

	return nil
}

func (t *basketTx) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := t.tx.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query existence: %w", err)
	}
	return true, nil
}
