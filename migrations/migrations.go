package migrations

import "embed"

// FS carries the schema migrations compiled into the binaries.
//
//go:embed files/*.sql
var FS embed.FS

const Dir = "files"
