package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/migration"
	"github.com/julianstephens/heartline/migrations"
)

// Kind names this backend; storage.KindSQLite refers to it
const Kind = "sqlite"

// Store keeps the progress document in a single-row SQLite table
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init opens the database, creating it and applying pending migrations as
// needed. Calling it again on an open store is a no-op.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		s.db.Close()
		s.db = nil
		return err
	}

	return nil
}

func (s *Store) migrate() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	if err := runner.ValidateVersion(); err != nil {
		return err
	}
	if _, err := runner.Apply(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) ReadDocument() ([]byte, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not initialized")
	}

	var body string
	err := s.db.QueryRow("SELECT body FROM progress_document WHERE id = 1").Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read progress document: %w", err)
	}
	return []byte(body), nil
}

func (s *Store) WriteDocument(data []byte) error {
	if s.db == nil {
		return fmt.Errorf("storage not initialized")
	}

	_, err := s.db.Exec(`
		INSERT INTO progress_document (id, body, updated_at, revision) VALUES (1, ?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at,
			revision = progress_document.revision + 1
	`, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write progress document: %w", err)
	}
	return nil
}

// Revision returns how many times the document has been written
func (s *Store) Revision() (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not initialized")
	}
	var revision int
	err := s.db.QueryRow("SELECT revision FROM progress_document WHERE id = 1").Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return revision, err
}

// SchemaVersion returns the applied migration version
func (s *Store) SchemaVersion() (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not initialized")
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.CurrentVersion()
}

// SchemaStatus returns the applied and the latest known migration versions
func (s *Store) SchemaStatus() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, fmt.Errorf("storage not initialized")
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.CurrentVersion(); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.LatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) Kind() string {
	return Kind
}

// GetDB returns the underlying database connection.
// Returns nil until Init has been called.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
