// Package render turns virtual node trees into HTML.
//
// Trees are expanded (components rendered, fragments flattened) and every
// interactive element receives a data-hid attribute in document order. The
// browser runtime assigns IDs the same way, which is what lets it find the
// server-rendered elements it needs to bind listeners to.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// RenderPage wraps a body in a complete document and adds the scripts that
// load the client bundle from the package directory.
//
// All text and attribute values are escaped. Raw nodes are written verbatim
// and must only carry trusted markup.
package render
