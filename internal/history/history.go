// Package history keeps an audit trail of unmonitor changes in SQLite.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/unmonitorr/internal/reconcile"
)

//go:embed schema.sql
var schema string

// Entry is one recorded change.
type Entry struct {
	ID         int64
	RunID      string
	Library    string
	Client     string
	Kind       string
	RecordID   int
	ExternalID string
	Title      string
	DryRun     bool
	CreatedAt  time.Time
}

// Filter specifies criteria for listing entries.
type Filter struct {
	RunID   string
	Library string
	Applied bool // exclude dry-run entries
	Limit   int
}

// Store persists changes. It implements reconcile.Recorder.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ reconcile.Recorder = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := NewStore(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate creates the changes table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply history schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one change.
func (s *Store) Record(ctx context.Context, c reconcile.Change) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO changes (run_id, library, client, kind, record_id, external_id, title, dry_run, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.RunID, c.Library, c.Client, c.Kind.String(), c.RecordID, c.ExternalID, c.Title, c.DryRun, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert change: %w", err)
	}
	return nil
}

// List returns entries matching the filter, most recent first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	var conditions []string
	var args []any

	if f.RunID != "" {
		conditions = append(conditions, "run_id = ?")
		args = append(args, f.RunID)
	}
	if f.Library != "" {
		conditions = append(conditions, "library = ?")
		args = append(args, f.Library)
	}
	if f.Applied {
		conditions = append(conditions, "dry_run = 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT id, run_id, library, client, kind, record_id, external_id, title, dry_run, created_at
		FROM changes ` + whereClause + ` ORDER BY id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.RunID, &e.Library, &e.Client, &e.Kind, &e.RecordID,
			&e.ExternalID, &e.Title, &e.DryRun, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan change: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate changes: %w", err)
	}
	return entries, nil
}
