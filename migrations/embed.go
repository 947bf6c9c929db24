package migrations

import "embed"

// Files holds the forward-only SQL migrations for the local storage database.
//
//go:embed *.sql
var Files embed.FS
