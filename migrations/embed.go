// Package migrations embebe los scripts SQL del esquema (*.up.sql / *.down.sql).
package migrations

import "embed"

// FS scripts en orden lexicográfico: NNNN_nombre.{up,down}.sql.
//
//go:embed *.sql
var FS embed.FS
