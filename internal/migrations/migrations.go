// Package migrations embeds the goose SQL migrations for every supported
// storage dialect. Each dialect lives in its own directory.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
