package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Options configure the connection pool.
type Options struct {
	DSN      string
	MaxConns int32
	// QueryTimeout bounds every single round trip to the database. Zero disables it.
	QueryTimeout time.Duration
	// IsolationLevel is used for basket transactions, e.g. "serializable" or "read committed".
	IsolationLevel string
}

// Connection is a pgx pool with per-statement timeouts.
type Connection struct {
	*pgxpool.Pool
	queryTimeout time.Duration
	isoLevel     pgx.TxIsoLevel
}

func NewConnection(ctx context.Context, opts Options) (*Connection, error) {
	isoLevel, err := ParseIsolationLevel(opts.IsolationLevel)
	if err != nil {
		return nil, err
	}

	conf, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		conf.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	return &Connection{
		Pool:         pool,
		queryTimeout: opts.QueryTimeout,
		isoLevel:     isoLevel,
	}, nil
}

// ParseIsolationLevel maps a configured isolation level name onto pgx.
// An empty name selects serializable.
func ParseIsolationLevel(name string) (pgx.TxIsoLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "serializable":
		return pgx.Serializable, nil
	case "repeatable read", "repeatable_read":
		return pgx.RepeatableRead, nil
	case "read committed", "read_committed":
		return pgx.ReadCommitted, nil
	default:
		return "", fmt.Errorf("unsupported isolation level %q", name)
	}
}

func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return fmt.Errorf("connection pool is nil")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Pool.Ping(ctx)
}

// SQL exposes the pool through database/sql for tooling that needs it.
// Closing the returned handle does not close the pool.
func (s *Connection) SQL() *sql.DB {
	return stdlib.OpenDBFromPool(s.Pool)
}

func (s *Connection) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, s.queryTimeout)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
