// Package migrations embeds the SQL that creates the diary schema. It is
// applied with goose the first time a database file is unlocked.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
