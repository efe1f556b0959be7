// Package missstore persists fallback misses in SQLite so broken links can be
// reviewed after the fact.
package missstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
	"git.home.luguber.info/inful/docresolve/internal/logfields"
	"git.home.luguber.info/inful/docresolve/internal/navigate"
	"git.home.luguber.info/inful/docresolve/internal/resolve"
)

// appendTimeout bounds inserts made from the request path.
const appendTimeout = 2 * time.Second

// SQLiteStore records miss events in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the miss database.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, derrors.StorageError("open", fmt.Errorf("open sqlite database: %w", err))
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, derrors.StorageError("initialize", fmt.Errorf("initialize schema: %w", err))
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS misses (
		id TEXT PRIMARY KEY,
		lang TEXT NOT NULL,
		root TEXT NOT NULL,
		path TEXT NOT NULL,
		filename TEXT NOT NULL,
		stage TEXT NOT NULL,
		category TEXT NOT NULL,
		error TEXT,
		occurred_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_misses_occurred_at ON misses(occurred_at);
	CREATE INDEX IF NOT EXISTS idx_misses_path ON misses(lang, path);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores one event.
func (s *SQLiteStore) Append(ctx context.Context, ev navigate.MissEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO misses (id, lang, root, path, filename, stage, category, error, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Lang, ev.Root, ev.Path, ev.Filename, ev.Stage, ev.Category, ev.Error,
		ev.OccurredAt.UnixMilli(),
	)
	if err != nil {
		return derrors.StorageError("append", fmt.Errorf("insert miss: %w", err))
	}
	return nil
}

// List returns the most recent events first. A limit <= 0 returns all rows.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]navigate.MissEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lang, root, path, filename, stage, category, error, occurred_at
		 FROM misses ORDER BY occurred_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, derrors.StorageError("list", fmt.Errorf("query misses: %w", err))
	}
	defer rows.Close()

	var events []navigate.MissEvent
	for rows.Next() {
		var ev navigate.MissEvent
		var errText sql.NullString
		var occurredMS int64
		if err := rows.Scan(&ev.ID, &ev.Lang, &ev.Root, &ev.Path, &ev.Filename,
			&ev.Stage, &ev.Category, &errText, &occurredMS); err != nil {
			return nil, derrors.StorageError("list", fmt.Errorf("scan miss: %w", err))
		}
		ev.Error = errText.String
		ev.OccurredAt = time.UnixMilli(occurredMS).UTC()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, derrors.StorageError("list", fmt.Errorf("iterate rows: %w", err))
	}
	return events, nil
}

// Prune deletes events older than before and returns how many were removed.
func (s *SQLiteStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM misses WHERE occurred_at < ?", before.UnixMilli())
	if err != nil {
		return 0, derrors.StorageError("prune", fmt.Errorf("delete misses: %w", err))
	}
	return res.RowsAffected()
}

// NavigateToNotFound implements resolve.FallbackNavigator by recording the miss.
func (s *SQLiteStore) NavigateToNotFound(ctx context.Context, miss resolve.Miss) {
	ev := navigate.NewMissEvent(miss)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), appendTimeout)
	defer cancel()

	if err := s.Append(ctx, ev); err != nil {
		slog.Warn("Failed to record miss", logfields.MissID(ev.ID), logfields.Path(ev.Path), logfields.Error(err))
	}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
