package storage

import (
	"path/filepath"
	"strings"

	"github.com/julianstephens/heartline/internal/storage/sqlite"
)

const (
	KindJSON   = "json"
	KindSQLite = sqlite.Kind
)

// KindForPath picks the backend from the file extension
func KindForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	default:
		return KindJSON
	}
}

// New returns the provider matching path: SQLite for database files,
// a plain JSON document otherwise
func New(path string) Provider {
	if KindForPath(path) == KindSQLite {
		return sqlite.NewStore(path)
	}
	return NewJSONStore(path)
}
