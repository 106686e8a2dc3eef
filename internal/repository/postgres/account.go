package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/basketd/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var account model.Account
	query := `SELECT uid, email, password FROM user_account WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(&account.ID, &account.Email, &account.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO user_account (email, password) VALUES ($1, $2) RETURNING uid, email, password`

	var saved model.Account
	err := r.db.QueryRow(ctx, query, account.Email, account.PasswordHash).Scan(&saved.ID, &saved.Email, &saved.PasswordHash)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}
