package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// PasswordHasher turns a raw password into its stored form.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

type fixtureProduct struct {
	name  string
	price decimal.Decimal
}

type fixtureAccount struct {
	email    string
	password string
}

var (
	fixtureProducts = []fixtureProduct{
		{name: "Pomme", price: decimal.RequireFromString("1.20")},
		{name: "Poire", price: decimal.RequireFromString("1.60")},
		{name: "Fraise", price: decimal.RequireFromString("3.80")},
	}
	fixtureAccounts = []fixtureAccount{
		{email: "pierre", password: "123456"},
		{email: "toto", password: "babar"},
	}
)

// Seeder wipes the store and loads fixture data.
type Seeder struct {
	db     *sql.DB
	hasher PasswordHasher
}

// NewSeeder creates a Seeder writing through db.
func NewSeeder(db *sql.DB, hasher PasswordHasher) *Seeder {
	return &Seeder{db: db, hasher: hasher}
}

// Reset truncates all tables, restarts identifiers at 1 and inserts the fixtures,
// all in one transaction.
func (s *Seeder) Reset(ctx context.Context) (err error) {
	hashes := make([]string, len(fixtureAccounts))
	for i, a := range fixtureAccounts {
		hashes[i], err = s.hasher.Hash(a.password)
		if err != nil {
			return fmt.Errorf("failed to hash password of %s: %w", a.email, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`TRUNCATE basket_content, basket, product, user_account RESTART IDENTITY CASCADE`,
	); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	for _, p := range fixtureProducts {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO product (name, price) VALUES ($1, $2)`, p.name, p.price.StringFixed(2),
		); err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.name, err)
		}
	}

	for i, a := range fixtureAccounts {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO user_account (email, password) VALUES ($1, $2)`, a.email, hashes[i],
		); err != nil {
			return fmt.Errorf("failed to insert account %s: %w", a.email, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	return nil
}
