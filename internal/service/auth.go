package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/basketd/internal/logger"
	"github.com/dtroode/basketd/internal/model"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encoded, password string) (bool, error)
}

// Auth verifies account credentials.
type Auth struct {
	accountStore model.AccountStore
	hasher       PasswordHasher
	logger       *logger.Logger
	// decoy is verified against when the account does not exist, so unknown
	// accounts cost the same as wrong passwords.
	decoy string
}

func NewAuth(accountStore model.AccountStore, hasher PasswordHasher, logger *logger.Logger) *Auth {
	decoy, err := hasher.Hash("decoy-password")
	if err != nil {
		logger.Warn("Auth service: failed to prepare decoy hash", "error", err.Error())
	}

	return &Auth{
		accountStore: accountStore,
		hasher:       hasher,
		logger:       logger,
		decoy:        decoy,
	}
}

// Verify returns the account id matching email and password.
// Missing credentials, unknown accounts and wrong passwords all yield model.ErrUnauthenticated.
func (a *Auth) Verify(ctx context.Context, email, password string) (int64, error) {
	if email == "" {
		return 0, model.ErrUnauthenticated
	}

	account, err := a.accountStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		if a.decoy != "" {
			_, _ = a.hasher.Verify(a.decoy, password)
		}
		a.logger.Debug("Auth service: unknown account", "email", email)
		return 0, model.ErrUnauthenticated
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return 0, fmt.Errorf("failed to get account by email: %w", err)
	}

	ok, err := a.hasher.Verify(account.PasswordHash, password)
	if err != nil {
		// An unreadable hash never authenticates.
		a.logger.Error("Auth service: stored password hash is unreadable",
			"uid", account.ID,
			"error", err.Error())
		return 0, model.ErrUnauthenticated
	}
	if !ok {
		a.logger.Debug("Auth service: password mismatch", "uid", account.ID)
		return 0, model.ErrUnauthenticated
	}

	return account.ID, nil
}

// CreateAccount stores a new account with a hashed password and returns its id.
func (a *Auth) CreateAccount(ctx context.Context, email, password string) (int64, error) {
	if email == "" || password == "" {
		return 0, fmt.Errorf("email and password are required")
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := a.accountStore.Create(ctx, model.Account{Email: email, PasswordHash: hash})
	if err != nil {
		return 0, fmt.Errorf("failed to create account: %w", err)
	}

	a.logger.Info("Auth service: account created",
		"uid", account.ID,
		"email", email)

	return account.ID, nil
}
