// Package public embeds the console's static assets.
package public

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

// Prefix is the URL path the assets are served under, outside the console base path.
const Prefix = "/public/static/"

//go:embed static/*
var static embed.FS

// StaticFS returns the assets rooted at static/.
func StaticFS() (fs.FS, error) {
	return fs.Sub(static, "static")
}

// Handler serves the embedded assets for requests under Prefix.
func Handler() (http.Handler, error) {
	assets, err := StaticFS()
	if err != nil {
		return nil, fmt.Errorf("embed static: %w", err)
	}
	return http.StripPrefix(Prefix, http.FileServer(http.FS(assets))), nil
}
