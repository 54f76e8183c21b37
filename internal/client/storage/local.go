// Package storage is the CLI's "local storage": a key/value table in a
// SQLite file that the session store persists its token into.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tardis/internal/dbx"
	"github.com/dmitrijs2005/tardis/internal/logging"
)

const opTimeout = 5 * time.Second

// Local implements session.Storage over the metadata table. Values are
// stored JSON-encoded, matching what the browser's local storage holds.
type Local struct {
	db     dbx.DBTX
	logger logging.Logger
}

func NewLocal(db dbx.DBTX, l logging.Logger) *Local {
	return &Local{db: db, logger: l.With("module", "local_storage")}
}

func (s *Local) Set(k string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode metadata[%s]: %w", k, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, k, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", k, err)
	}
	return nil
}

// Get decodes the value stored under k into v. A missing key leaves v as is.
func (s *Local) Get(k string, v any) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, k).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get metadata[%s]: %w", k, err)
	}

	if err := json.Unmarshal(value, v); err != nil {
		return fmt.Errorf("failed to decode metadata[%s]: %w", k, err)
	}
	return nil
}

// Del removes k. Failures are logged; the interface has no error return.
func (s *Local) Del(k string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, k); err != nil {
		s.logger.Error(ctx, "failed to delete metadata", "key", k, "error", err)
	}
}
