package model

import "context"

// AccountStore defines persistence operations for user accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
}

// Account is a user account. PasswordHash is an encoded one-way hash, never a raw secret.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
}
