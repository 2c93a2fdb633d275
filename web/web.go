// Package web embeds the static frontend assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// Static returns the frontend filesystem rooted at the asset directory.
func Static() (fs.FS, error) {
	return fs.Sub(assets, "static")
}
