package postgres

import "embed"

// Migrations holds the embedded goose migration files. The server applies
// them at startup so a deployed binary never depends on files on disk.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the path of the migration files inside Migrations.
const MigrationsDir = "migrations"
