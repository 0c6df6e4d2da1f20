package migrations

import "embed"

// FS contains embedded SQLite migrations for birth record storage.
//
//go:embed *.sql
var FS embed.FS
