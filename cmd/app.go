package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dtroode/basketd/database"
	"github.com/dtroode/basketd/internal/config"
	"github.com/dtroode/basketd/internal/credential"
	"github.com/dtroode/basketd/internal/logger"
	"github.com/dtroode/basketd/internal/repository/postgres"
)

// app holds what every database-backed command needs.
type app struct {
	cfg    *config.Config
	logger *logger.Logger
	db     *postgres.Connection
	sqlDB  *sql.DB
	hasher *credential.Hasher
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	lg := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, postgres.Options{
		DSN:            cfg.Database.URL,
		MaxConns:       cfg.Database.MaxConns,
		QueryTimeout:   cfg.Database.QueryTimeout,
		IsolationLevel: cfg.Database.IsolationLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: lg,
		db:     db,
		sqlDB:  db.SQL(),
		hasher: credential.NewHasher(credential.Params{Time: cfg.KDF.Time, MemKiB: cfg.KDF.MemKiB, Par: cfg.KDF.Par}),
	}, nil
}

func (a *app) migrate(ctx context.Context) error {
	if err := database.Migrate(ctx, a.sqlDB, a.logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (a *app) close() {
	if err := a.sqlDB.Close(); err != nil {
		a.logger.Error("failed to close sql handle", "error", err.Error())
	}
	_ = a.db.Close()
}
