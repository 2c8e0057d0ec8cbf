// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cooldown

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/slashkit/internal/logger"
)

// sqliteSchema stores expiries as unix nanoseconds; -1 never expires.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cooldowns (
    key TEXT PRIMARY KEY,
    expires_at INTEGER NOT NULL
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_cooldowns_expires_at ON cooldowns(expires_at);
`

const foreverExpiry int64 = -1

// SQLiteStore persists cooldowns so they survive restarts.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLiteStore opens or creates the database at path. A nil logger discards output.
func OpenSQLiteStore(path string, l *log.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}
	if l == nil {
		l = logger.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	l.Debug("cooldown store opened", "path", path)
	return &SQLiteStore{db: db, logger: l}, nil
}

// GetOrSet implements Store.
func (s *SQLiteStore) GetOrSet(key string, now time.Time, ttl time.Duration) (time.Duration, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var expiresAt int64
	err = tx.QueryRow("SELECT expires_at FROM cooldowns WHERE key = ?", key).Scan(&expiresAt)
	switch {
	case err == nil:
		if expiresAt == foreverExpiry {
			return Forever, nil
		}
		if left := time.Duration(expiresAt - now.UnixNano()); left > 0 {
			return left, nil
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return 0, fmt.Errorf("read cooldown: %w", err)
	}

	next := foreverExpiry
	if ttl >= 0 {
		next = now.Add(ttl).UnixNano()
	}
	if _, err := tx.Exec(
		"INSERT INTO cooldowns (key, expires_at) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET expires_at = excluded.expires_at",
		key, next,
	); err != nil {
		return 0, fmt.Errorf("write cooldown: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return 0, nil
}

// Sweep deletes entries that expired at or before now.
func (s *SQLiteStore) Sweep(now time.Time) (int64, error) {
	res, err := s.db.Exec(
		"DELETE FROM cooldowns WHERE expires_at != ? AND expires_at <= ?",
		foreverExpiry, now.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("sweep cooldowns: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		s.logger.Debug("cooldowns swept", "removed", n)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
