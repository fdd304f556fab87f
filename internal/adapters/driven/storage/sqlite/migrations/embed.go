// Package migrations embeds the schema for report history and scheduler state.
package migrations

import "embed"

// FS holds the NNN_name.up.sql files applied in order by the store.
//
//go:embed *.sql
var FS embed.FS
