package migrations

import "embed"

// FS holds the schema migrations for every storage backend
//
//go:embed sqlite/*.sql
var FS embed.FS
