// Package clientgen generates API client source code from discovery
// documents by rendering the embedded template set through the template
// engine in pkg/engine.
package clientgen

import (
	"embed"
	"io/fs"
)

//go:embed templates/java/*.tmpl
var embeddedTemplates embed.FS

// EmbeddedTemplates exposes the built-in template set so callers can render
// with it, extend it, or overlay their own directory on top. Names are
// relative to the bundle root, e.g. "java/model.tmpl".
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// Only reachable if the embed directive and the path drift apart.
		return embeddedTemplates
	}
	return sub
}
