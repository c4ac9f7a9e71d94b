// Package migrations embeds the goose migrations for the local state database.
package migrations

import "embed"

//go:embed sql/*.sql
var Migrations embed.FS

// Dir is the directory inside Migrations that holds the scripts.
const Dir = "sql"
