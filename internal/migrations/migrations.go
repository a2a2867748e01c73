// Package migrations embeds the goose SQL migrations of the toolkit store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
