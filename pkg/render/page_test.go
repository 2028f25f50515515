package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chatbot-dev/chatbot/pkg/vdom"
)

func renderPage(t *testing.T, page PageData) string {
	t.Helper()

	var buf bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderPage(&buf, page); err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	return buf.String()
}

func TestRenderPage(t *testing.T) {
	html := renderPage(t, PageData{
		Title: "Welcome <home>",
		Meta:  []MetaTag{{Name: "description", Content: "a & b"}},
		Links: []LinkTag{{Rel: "stylesheet", Href: "/assets/main.css"}},
		Body:  vdom.Main(vdom.H1(vdom.Text("Hi"))),
	})

	for _, want := range []string{
		"<!DOCTYPE html>\n<html lang=\"en\">",
		"<title>Welcome &lt;home&gt;</title>",
		`<meta name="description" content="a &amp; b">`,
		`<link rel="stylesheet" href="/assets/main.css">`,
		"<body><main><h1>Hi</h1></main></body>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in:\n%s", want, html)
		}
	}
	if strings.Contains(html, "new Go()") {
		t.Error("page without a bundle should not load one")
	}
	if strings.Contains(html, "WebSocket") {
		t.Error("page without a reload URL should not connect")
	}
}

func TestRenderPageLang(t *testing.T) {
	html := renderPage(t, PageData{Lang: "fr"})
	if !strings.Contains(html, `<html lang="fr">`) {
		t.Errorf("lang not rendered: %s", html)
	}
}

func TestRenderPageBootstrap(t *testing.T) {
	html := renderPage(t, PageData{
		Body: vdom.Button(vdom.OnClick(func() {}), vdom.Text("Click Me: 0")),
		Bootstrap: Bootstrap{
			Script: "/pkg/chatbot.js",
			Wasm:   "/pkg/chatbot.wasm",
		},
	})

	for _, want := range []string{
		`<script src="/pkg/chatbot.js" defer></script>`,
		`fetch("/pkg/chatbot.wasm")`,
		`<link rel="preload" href="/pkg/chatbot.wasm"`,
		`<body><button data-hid="h1">Click Me: 0</button></body>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in:\n%s", want, html)
		}
	}
	if strings.Index(html, "new Go()") > strings.Index(html, "<body>") {
		t.Error("bootstrap scripts belong in the head")
	}
}

func TestRenderPageLiveReload(t *testing.T) {
	html := renderPage(t, PageData{
		Bootstrap: Bootstrap{ReloadURL: "ws://127.0.0.1:3001/live_reload"},
	})
	if !strings.Contains(html, `new WebSocket("ws://127.0.0.1:3001/live_reload")`) {
		t.Errorf("reload script missing:\n%s", html)
	}
}

func TestJSString(t *testing.T) {
	if got := jsString(`</script><script>`); strings.Contains(got, "</script>") {
		t.Errorf("jsString did not neutralise closing tag: %s", got)
	}
	if got := jsString(`a"b`); got != `"a\"b"` {
		t.Errorf("jsString = %s", got)
	}
}

func TestRenderPageWriteError(t *testing.T) {
	for i := 0; i < 4; i++ {
		err := NewRenderer(RendererConfig{}).RenderPage(&failingWriter{after: i}, PageData{
			Title: "t",
			Body:  vdom.P(vdom.Text("x")),
		})
		if err == nil {
			t.Errorf("write failure after %d writes was not reported", i)
		}
	}
}
