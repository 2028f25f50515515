package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chatbot-dev/chatbot/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	Title string
	Meta  []MetaTag
	Links []LinkTag

	// Body is rendered as the only content of <body>. The browser runtime
	// hydrates against exactly this subtree.
	Body *vdom.VNode

	// Bootstrap describes the client bundle. Pages without a bundle are
	// served as static HTML.
	Bootstrap Bootstrap
}

// Bootstrap holds the URLs the document uses to start the client runtime.
type Bootstrap struct {
	// Script is the URL of the wasm support script that defines Go.
	Script string

	// Wasm is the URL of the compiled client module.
	Wasm string

	// ReloadURL is the live reload websocket. Empty outside development.
	ReloadURL string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string
	Property string
	Content  string
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel  string
	Href string
	Type string
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	pw := &pageWriter{w: w}
	pw.printf("<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(lang))
	pw.printf("<meta charset=\"utf-8\">\n")
	pw.printf("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	if page.Title != "" {
		pw.printf("<title>%s</title>\n", escapeHTML(page.Title))
	}
	for _, meta := range page.Meta {
		pw.printf("<meta%s%s content=\"%s\">\n",
			optionalAttr("name", meta.Name),
			optionalAttr("property", meta.Property),
			escapeAttr(meta.Content))
	}
	for _, link := range page.Links {
		pw.printf("<link%s%s%s>\n",
			optionalAttr("rel", link.Rel),
			optionalAttr("href", link.Href),
			optionalAttr("type", link.Type))
	}
	writeBootstrap(pw, page.Bootstrap)
	pw.printf("</head>\n<body>")
	if pw.err != nil {
		return pw.err
	}

	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}

	pw.printf("</body>\n</html>\n")
	return pw.err
}

// writeBootstrap emits the bundle loader. Module scripts run after the
// document is parsed, so the client always finds a complete body.
func writeBootstrap(pw *pageWriter, b Bootstrap) {
	if b.Script != "" && b.Wasm != "" {
		pw.printf("<link rel=\"preload\" href=\"%s\" as=\"fetch\" type=\"application/wasm\" crossorigin>\n", escapeAttr(b.Wasm))
		pw.printf("<script src=\"%s\" defer></script>\n", escapeAttr(b.Script))
		pw.printf("<script type=\"module\">\nconst go = new Go();\n"+
			"WebAssembly.instantiateStreaming(fetch(%s), go.importObject)\n"+
			"  .then((result) => go.run(result.instance))\n"+
			"  .catch((err) => console.error(\"failed to start client:\", err));\n</script>\n",
			jsString(b.Wasm))
	}
	if b.ReloadURL != "" {
		pw.printf("<script>%s</script>\n", strings.Replace(liveReloadScript, "{{URL}}", jsString(b.ReloadURL), 1))
	}
}

const liveReloadScript = `(function () {
  var delay = 1000;
  function connect() {
    var ws = new WebSocket({{URL}});
    ws.onopen = function () { delay = 1000; };
    ws.onmessage = function (e) {
      var msg;
      try { msg = JSON.parse(e.data); } catch (err) { return; }
      if (msg.type === "reload") {
        location.reload();
      } else if (msg.type === "css") {
        document.querySelectorAll('link[rel="stylesheet"]').forEach(function (link) {
          var url = new URL(link.href);
          url.searchParams.set("_reload", Date.now());
          link.href = url.toString();
        });
      }
    };
    ws.onclose = function () {
      setTimeout(connect, delay);
      delay = Math.min(delay * 2, 30000);
    };
  }
  connect();
})();`

// jsString quotes s as a JavaScript string literal that is safe inside a
// script element.
func jsString(s string) string {
	return strings.ReplaceAll(strconv.Quote(s), "</", `<\/`)
}

func optionalAttr(name, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, name, escapeAttr(value))
}

// pageWriter remembers the first write error so the document can be
// written without checking every call.
type pageWriter struct {
	w   io.Writer
	err error
}

func (p *pageWriter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
