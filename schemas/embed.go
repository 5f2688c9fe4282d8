// Package schemas holds the JSON Schema documents describing the importer's output artifacts.
package schemas

import "embed"

// FS contains every *.schema.json document in this directory.
//
//go:embed *.schema.json
var FS embed.FS
