// Package migrations embebe el esquema SQL de Postgres.
package migrations

import "embed"

// FS contiene los archivos *.sql en orden de aplicación.
//
//go:embed *.sql
var FS embed.FS
