// Package data embeds the shipped catalog content.
package data

import "embed"

// FS holds the YAML catalogs.
//
//go:embed *.yaml
var FS embed.FS
