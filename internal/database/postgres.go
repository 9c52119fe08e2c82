package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const DefaultTable = "kv_store"

// PostgresStore keeps blobs in a single key/value table.
type PostgresStore struct {
	db    *sqlx.DB
	table string
	log   *logrus.Logger
}

// OpenPostgres connects, pings with a timeout and makes sure the table exists.
func OpenPostgres(ctx context.Context, dsn, table string, log *logrus.Logger) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	s := NewPostgresStore(db, table, log)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewPostgresStore(db *sqlx.DB, table string, log *logrus.Logger) *PostgresStore {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresStore{db: db, table: pq.QuoteIdentifier(table), log: log}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	q := `CREATE TABLE IF NOT EXISTS ` + s.table + ` (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL DEFAULT now())`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create %s: %w", s.table, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM `+s.table+` WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		s.log.Warnf("get %s failed: %v", key, err)
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	q := `INSERT INTO ` + s.table + ` (key, value, updated_at) VALUES ($1, $2, now()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.db.ExecContext(ctx, q, key, string(value)); err != nil {
		s.log.Warnf("set %s failed: %v", key, err)
		return err
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
