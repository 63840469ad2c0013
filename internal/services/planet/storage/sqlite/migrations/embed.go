package migrations

import "embed"

// FS contains embedded SQLite migrations for planet storage.
//
//go:embed *.sql
var FS embed.FS
