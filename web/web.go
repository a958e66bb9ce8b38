// Package web embeds the calculator's templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

// Templates returns the HTML templates.
func Templates() fs.FS {
	return templates
}

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
