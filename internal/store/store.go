// Package store handles SQLite database operations for the content and
// taxonomy store.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store is the SQLite database handle.
type Store struct {
	db *sql.DB

	// deferCounts suspends incremental term-count maintenance during
	// batch runs. Callers are expected to run RecountTerms afterwards.
	deferCounts bool

	// ancestorCache memoizes AncestorChain results. Long batch runs
	// invalidate it periodically to bound memory.
	ancestorCache map[int64][]int64
}

var (
	// ErrTaxonomyNotFound indicates the requested taxonomy does not exist.
	ErrTaxonomyNotFound = errors.New("taxonomy not found")
	// ErrPostTypeNotFound indicates the requested post type does not exist.
	ErrPostTypeNotFound = errors.New("post type not found")
	// ErrTermNotFound indicates the requested term ID is not in the store.
	ErrTermNotFound = errors.New("term not found")
	// ErrPostNotFound indicates the requested post ID is not in the store.
	ErrPostNotFound = errors.New("post not found")
)

// DB returns the underlying sql.DB for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Open opens or creates the store database at the given path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, ancestorCache: make(map[int64][]int64)}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// OpenInMemory opens an in-memory store (for testing).
func OpenInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// A second pooled connection would see a separate empty database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, ancestorCache: make(map[int64][]int64)}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS taxonomies (
		name         TEXT PRIMARY KEY,
		label        TEXT NOT NULL DEFAULT '',
		hierarchical INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS terms (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		taxonomy TEXT NOT NULL REFERENCES taxonomies(name),
		name     TEXT NOT NULL,
		slug     TEXT NOT NULL,
		parent   INTEGER NOT NULL DEFAULT 0,
		count    INTEGER NOT NULL DEFAULT 0,
		UNIQUE(taxonomy, slug)
	);
	CREATE INDEX IF NOT EXISTS idx_terms_taxonomy ON terms(taxonomy);
	CREATE INDEX IF NOT EXISTS idx_terms_parent ON terms(parent);

	CREATE TABLE IF NOT EXISTS post_types (
		name  TEXT PRIMARY KEY,
		label TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS posts (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		post_type  TEXT NOT NULL REFERENCES post_types(name),
		status     TEXT NOT NULL DEFAULT 'publish',
		title      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	CREATE INDEX IF NOT EXISTS idx_posts_type ON posts(post_type);

	CREATE TABLE IF NOT EXISTS term_assignments (
		post_id INTEGER NOT NULL REFERENCES posts(id),
		term_id INTEGER NOT NULL REFERENCES terms(id),
		PRIMARY KEY (post_id, term_id)
	);
	CREATE INDEX IF NOT EXISTS idx_assignments_term ON term_assignments(term_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Built-in post types, mirrored from the usual content-store defaults.
	for _, pt := range []struct{ name, label string }{
		{"post", "Posts"},
		{"page", "Pages"},
	} {
		if _, err := s.db.Exec(
			"INSERT OR IGNORE INTO post_types (name, label) VALUES (?, ?)",
			pt.name, pt.label,
		); err != nil {
			return fmt.Errorf("failed to seed post types: %w", err)
		}
	}

	return nil
}

// StoreStats summarizes the store contents.
type StoreStats struct {
	TaxonomyCount   int
	TermCount       int
	PostCount       int
	AssignmentCount int
}

// Stats returns counts of the store's entities.
func (s *Store) Stats() (*StoreStats, error) {
	stats := &StoreStats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM taxonomies", &stats.TaxonomyCount},
		{"SELECT COUNT(*) FROM terms", &stats.TermCount},
		{"SELECT COUNT(*) FROM posts", &stats.PostCount},
		{"SELECT COUNT(*) FROM term_assignments", &stats.AssignmentCount},
	}

	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	return stats, nil
}
