package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"trec/internal/config"
)

// ErrNotFound indicates no catalog entry matches the requested ID.
var ErrNotFound = errors.New("session not found in catalog")

// Catalog manages session catalog persistence backed by SQLite.
type Catalog struct {
	db   *sql.DB
	dir  string
	path string
}

// Open initializes or connects to the catalog database in the configured
// library directory.
func Open(cfg *config.Config) (*Catalog, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LibraryDir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	catalog := &Catalog{db: db, dir: cfg.Paths.LibraryDir, path: dbPath}
	if err := catalog.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return catalog, nil
}

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Dir returns the library directory the catalog indexes.
func (c *Catalog) Dir() string {
	return c.dir
}

// Get returns the entry with the given ID.
func (c *Catalog) Get(ctx context.Context, id string) (*Entry, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, title, path, created_at, duration_ms, frame_count, shell, width, height
         FROM sessions WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return entry, nil
}

// List returns all entries, newest first.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, title, path, created_at, duration_ms, frame_count, shell, width, height
         FROM sessions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return entries, nil
}

// Remove deletes the entry with the given ID and reports the removed entry so
// callers can also delete the file if they choose.
func (c *Catalog) Remove(ctx context.Context, id string) (*Entry, error) {
	entry, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := c.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("delete session %s: %w", id, err)
	}
	return entry, nil
}

// Update rewrites the stored metadata for an existing entry. Edits that
// rewrite the recording on disk use this to keep duration and frame counts in
// step with the file.
func (c *Catalog) Update(ctx context.Context, entry Entry) error {
	res, err := c.db.ExecContext(ctx,
		`UPDATE sessions
         SET title = ?, path = ?, duration_ms = ?, frame_count = ?, shell = ?, width = ?, height = ?
         WHERE id = ?`,
		entry.Title,
		entry.Path,
		entry.DurationMS,
		entry.FrameCount,
		entry.Shell,
		entry.Width,
		entry.Height,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update session %s: %w", entry.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session %s: %w", entry.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Catalog) insert(ctx context.Context, entry Entry) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO sessions (id, title, path, created_at, duration_ms, frame_count, shell, width, height)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Title,
		entry.Path,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		entry.DurationMS,
		entry.FrameCount,
		entry.Shell,
		entry.Width,
		entry.Height,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var entry Entry
	var createdAt string
	if err := row.Scan(
		&entry.ID,
		&entry.Title,
		&entry.Path,
		&createdAt,
		&entry.DurationMS,
		&entry.FrameCount,
		&entry.Shell,
		&entry.Width,
		&entry.Height,
	); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	entry.CreatedAt = parsed
	return &entry, nil
}
