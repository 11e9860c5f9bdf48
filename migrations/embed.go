// Package migrations embeds the SQL migrations of each service's MySQL database.
package migrations

import "embed"

//go:embed inventory/*.sql order/*.sql
var FS embed.FS
