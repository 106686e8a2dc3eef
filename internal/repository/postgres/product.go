package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dtroode/basketd/internal/model"
)

var _ model.ProductStore = (*ProductRepository)(nil)

type ProductRepository struct {
	db *Connection
}

func NewProductRepository(db *Connection) *ProductRepository {
	return &ProductRepository{
		db: db,
	}
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT pid, name, price::text FROM product ORDER BY pid`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (model.Product, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT pid, name, price::text FROM product WHERE pid = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, model.ErrProductNotFound
		}
		return model.Product{}, err
	}

	return product, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		product model.Product
		price   string
	)
	if err := row.Scan(&product.ID, &product.Name, &price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, err
		}
		return model.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to parse price of product %d: %w", product.ID, err)
	}
	product.Price = p

	return product, nil
}
