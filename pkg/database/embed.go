package database

import "embed"

// migrationFS embeds the SQL migration files so the binary can migrate
// itself on boot without shipping a migrations directory.
//
//go:embed migrations/*.sql
var migrationFS embed.FS
