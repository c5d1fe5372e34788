package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/pageindex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/pageindex/internal/core/domain"
	"github.com/custodia-labs/pageindex/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// afterMigration runs inside the migration's transaction, once the
// script of that version has been applied.
var afterMigration = map[int]func(tx *sql.Tx) error{
	2: refoldAll,
}

// Store is a SQLite-backed search index.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultDataDir returns ~/.pageindex/data.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".pageindex", "data"), nil
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pageindex/data/index.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL lets searches read while a re-index is writing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_search_index.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// applyMigration runs one migration and records its version atomically.
func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if hook, ok := afterMigration[version]; ok {
		if err := hook(tx); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// Get retrieves a record by page ID.
func (s *Store) Get(ctx context.Context, pageID string) (*domain.IndexedPage, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT page_id, language, title, content, path, modified_at, indexed_at
		FROM search_index WHERE page_id = ?
	`, pageID)

	page, err := scanPage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning page: %w", err)
	}
	return page, nil
}

// Upsert inserts a record or updates the one with the same page ID in a
// single statement. The language is only written on insert.
func (s *Store) Upsert(ctx context.Context, page domain.IndexedPage) error {
	if page.PageID == "" {
		return fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_index (page_id, language, title, content, path, modified_at, indexed_at,
			title_fold, content_fold)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(page_id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			path = excluded.path,
			modified_at = excluded.modified_at,
			indexed_at = excluded.indexed_at,
			title_fold = excluded.title_fold,
			content_fold = excluded.content_fold
	`, page.PageID, page.Language, page.Title, page.Content, page.Path,
		page.ModifiedAt, page.IndexedAt, domain.Fold(page.Title), domain.Fold(page.Content))

	if err != nil {
		return fmt.Errorf("saving page: %w", err)
	}
	return nil
}

// QueryByLanguageAndSubstring returns the newest records in the language
// whose title or content contain term. Matching is a byte search of the
// folded term in the folded columns, so it ignores case beyond ASCII.
func (s *Store) QueryByLanguageAndSubstring(
	ctx context.Context, language, term string, limit int,
) ([]domain.IndexedPage, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	folded := domain.Fold(term)

	rows, err := s.db.QueryContext(ctx, `
		SELECT page_id, language, title, content, path, modified_at, indexed_at
		FROM search_index
		WHERE language = ?
		  AND (instr(title_fold, ?) > 0 OR instr(content_fold, ?) > 0)
		ORDER BY modified_at DESC, page_id ASC
		LIMIT ?
	`, language, folded, folded, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search index: %w", err)
	}
	defer rows.Close()

	var pages []domain.IndexedPage //nolint:prealloc // size unknown from query
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		pages = append(pages, *page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}

	return pages, nil
}

// DeleteByID removes a record.
func (s *Store) DeleteByID(ctx context.Context, pageID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM search_index WHERE page_id = ?", pageID)
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	return nil
}

// DeleteAll removes every record.
func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM search_index")
	if err != nil {
		return fmt.Errorf("clearing search index: %w", err)
	}
	return nil
}

// Count returns the number of indexed pages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM search_index").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (*domain.IndexedPage, error) {
	var page domain.IndexedPage
	if err := row.Scan(&page.PageID, &page.Language, &page.Title, &page.Content,
		&page.Path, &page.ModifiedAt, &page.IndexedAt); err != nil {
		return nil, err
	}
	return &page, nil
}

// refoldAll fills the folded columns of rows written before they existed.
func refoldAll(tx *sql.Tx) error {
	rows, err := tx.Query("SELECT page_id, title, content FROM search_index")
	if err != nil {
		return fmt.Errorf("reading rows to refold: %w", err)
	}

	type folded struct{ id, title, content string }
	var pending []folded
	for rows.Next() {
		var f folded
		if err := rows.Scan(&f.id, &f.title, &f.content); err != nil {
			rows.Close()
			return fmt.Errorf("scanning row to refold: %w", err)
		}
		pending = append(pending, f)
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, f := range pending {
		if _, err := tx.Exec(
			"UPDATE search_index SET title_fold = ?, content_fold = ? WHERE page_id = ?",
			domain.Fold(f.title), domain.Fold(f.content), f.id,
		); err != nil {
			return fmt.Errorf("refolding %s: %w", f.id, err)
		}
	}
	return nil
}
