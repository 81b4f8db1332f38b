// Package migrations embeds the goose SQL migrations for the range schema
// and its demo data.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
