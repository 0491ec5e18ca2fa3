// Package carbonaudit exposes assets embedded from the repository root.
package carbonaudit

import "embed"

// Migrations holds the goose SQL migrations, one directory per SQL dialect.
//
//go:embed migrations
var Migrations embed.FS
