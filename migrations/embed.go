package migrations

import "embed"

// Files holds the SQL migrations applied by db.OpenSQLite, in file-name version order.
//
//go:embed *.sql
var Files embed.FS
