package client

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chatbot-dev/chatbot/app"
	"github.com/chatbot-dev/chatbot/internal/config"
	"github.com/chatbot-dev/chatbot/internal/errors"
	"github.com/chatbot-dev/chatbot/pkg/reactive"
	"github.com/chatbot-dev/chatbot/pkg/render"
	"github.com/chatbot-dev/chatbot/pkg/server"
	"github.com/chatbot-dev/chatbot/pkg/vdom"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func serverHTML(t *testing.T, c vdom.Component) string {
	t.Helper()
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(c.Render())
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	return html
}

func assertOps(t *testing.T, doc *fakeDocument, want ...string) {
	t.Helper()
	if len(doc.ops) != len(want) {
		t.Fatalf("ops = %q, want %q", doc.ops, want)
	}
	for i := range want {
		if doc.ops[i] != want[i] {
			t.Fatalf("ops = %q, want %q", doc.ops, want)
		}
	}
}

func TestHydrate_NoMutationBeforeInteraction(t *testing.T) {
	doc := newFakeDocument("/")
	doc.load(serverHTML(t, app.HomePage()))

	rt, err := Hydrate(doc, app.HomePage(), quiet())
	if err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	defer rt.Close()

	assertOps(t, doc)

	button := doc.element("h1")
	if button == nil {
		t.Fatal("server markup has no h1 element")
	}
	if n := button.listenerCount("click"); n != 1 {
		t.Errorf("click listeners = %d, want 1", n)
	}
}

func TestHydrate_ClickUpdatesCounter(t *testing.T) {
	doc := newFakeDocument("/")
	doc.load(serverHTML(t, app.HomePage()))

	rt, err := Hydrate(doc, app.HomePage(), quiet())
	if err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	defer rt.Close()

	doc.element("h1").fire("click", vdom.Event{})
	assertOps(t, doc, "text h1 Click Me: 1")

	doc.element("h1").fire("click", vdom.Event{})
	assertOps(t, doc, "text h1 Click Me: 1", "text h1 Click Me: 2")

	if n := doc.element("h1").listenerCount("click"); n != 1 {
		t.Errorf("click listeners = %d after updates, want 1", n)
	}
}

func TestHydrate_MissingElement(t *testing.T) {
	doc := newFakeDocument("/")
	doc.load("<main><h1>Welcome to Chatbot!</h1></main>")

	_, err := Hydrate(doc, app.HomePage(), quiet())
	if !errors.HasCode(err, "E401") {
		t.Fatalf("Hydrate() error = %v, want E401", err)
	}
	assertOps(t, doc)
}

func TestHydrateApp_FallsBackToMount(t *testing.T) {
	doc := newFakeDocument("/")
	doc.load("<main></main>")

	rt, err := HydrateApp(doc, app.New(), quiet())
	if err != nil {
		t.Fatalf("HydrateApp() error = %v", err)
	}
	defer rt.Close()

	assertOps(t, doc, "html body")
	if !strings.Contains(doc.body.html, "Click Me: 0") {
		t.Errorf("body = %q, want counter", doc.body.html)
	}
	if doc.element("h1") == nil {
		t.Fatal("mounted markup has no h1 element")
	}
}

func TestMountApp(t *testing.T) {
	doc := newFakeDocument("/")

	rt, err := MountApp(doc, app.New(), quiet())
	if err != nil {
		t.Fatalf("MountApp() error = %v", err)
	}
	defer rt.Close()

	assertOps(t, doc, "title Welcome to Chatbot", "html body")
	for _, want := range []string{
		"<h1>Welcome to Chatbot!</h1>",
		`<button data-hid="h1">Click Me: 0</button>`,
	} {
		if !strings.Contains(doc.body.html, want) {
			t.Errorf("body = %q, want substring %q", doc.body.html, want)
		}
	}

	doc.element("h1").fire("click", vdom.Event{})
	assertOps(t, doc, "title Welcome to Chatbot", "html body", "text h1 Click Me: 1")
}

func TestMountApp_NotFound(t *testing.T) {
	doc := newFakeDocument("/missing")

	rt, err := MountApp(doc, app.New(), quiet())
	if err != nil {
		t.Fatalf("MountApp() error = %v", err)
	}
	defer rt.Close()

	if doc.title != "Page not found" {
		t.Errorf("title = %q, want %q", doc.title, "Page not found")
	}
	if !strings.Contains(doc.body.html, "<h1>Page not found</h1>") {
		t.Errorf("body = %q, want not-found heading", doc.body.html)
	}
}

func TestSelectPage(t *testing.T) {
	root := app.New()
	tests := []struct {
		path  string
		title string
	}{
		{"/", "Welcome to Chatbot"},
		{"", "Welcome to Chatbot"},
		{"/nope", "Page not found"},
		{"/../etc/passwd", "Page not found"},
	}
	for _, tt := range tests {
		page, err := SelectPage(root, tt.path)
		if err != nil {
			t.Fatalf("SelectPage(%q) error = %v", tt.path, err)
		}
		if page.Title != tt.title {
			t.Errorf("SelectPage(%q).Title = %q, want %q", tt.path, page.Title, tt.title)
		}
	}
}

type toggler struct {
	open bool
}

func (c *toggler) Render() *vdom.VNode {
	return vdom.Div(
		vdom.Button(vdom.OnClick(func() { c.open = !c.open }), "toggle"),
		vdom.If(c.open, vdom.Span("details")),
	)
}

func TestRuntime_StructuralChangeRebindsListeners(t *testing.T) {
	doc := newFakeDocument("/")
	rt, err := Mount(doc, &toggler{}, quiet())
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	defer rt.Close()

	doc.element("h1").fire("click", vdom.Event{})

	assertOps(t, doc, "html body", "html body")
	if !strings.Contains(doc.body.html, "<span>details</span>") {
		t.Errorf("body = %q, want details", doc.body.html)
	}
	button := doc.element("h2")
	if button == nil {
		t.Fatalf("replaced markup has no h2 element: %q", doc.body.html)
	}
	if n := button.listenerCount("click"); n != 1 {
		t.Errorf("click listeners = %d, want 1", n)
	}

	button.fire("click", vdom.Event{})
	if strings.Contains(doc.body.html, "details") {
		t.Errorf("body = %q, want details removed", doc.body.html)
	}
}

type ticker struct {
	n *reactive.Signal[int]
}

func (c *ticker) Render() *vdom.VNode {
	return vdom.P(vdom.OnClick(func() {}), vdom.Textf("tick %d", c.n.Get()))
}

func (c *ticker) Watch(fn func()) func() {
	return c.n.Subscribe(func(int) { fn() })
}

func TestRuntime_WatchedStateOutsideHandlers(t *testing.T) {
	doc := newFakeDocument("/")
	c := &ticker{n: reactive.NewSignal(0)}

	rt, err := Mount(doc, c, quiet())
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	c.n.Set(1)
	assertOps(t, doc, "html body", "text h1 tick 1")

	rt.Close()
	c.n.Set(2)
	assertOps(t, doc, "html body", "text h1 tick 1")
	if n := doc.element("h1").listenerCount("click"); n != 0 {
		t.Errorf("click listeners = %d after Close, want 0", n)
	}
}

type attrs struct {
	disabled bool
}

func (c *attrs) Render() *vdom.VNode {
	var disabled vdom.Attr
	if c.disabled {
		disabled = vdom.Disabled()
	}
	return vdom.Button(disabled, vdom.Class("btn"), vdom.OnClick(func() { c.disabled = !c.disabled }), "go")
}

func TestRuntime_AttributePatches(t *testing.T) {
	doc := newFakeDocument("/")
	rt, err := Mount(doc, &attrs{}, quiet())
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	defer rt.Close()

	doc.element("h1").fire("click", vdom.Event{})
	doc.element("h1").fire("click", vdom.Event{})
	assertOps(t, doc, "html body", "attr h1 disabled=", "rmattr h1 disabled")
}

type panicky struct {
	clicks int
}

func (c *panicky) Render() *vdom.VNode {
	return vdom.Button(vdom.OnClick(func() {
		c.clicks++
		panic("boom")
	}), vdom.Textf("%d", c.clicks))
}

func TestRuntime_HandlerPanicIsReported(t *testing.T) {
	hook = new(panicHook)
	t.Cleanup(func() { hook = new(panicHook) })
	console := &fakeConsole{}
	InstallPanicHook(console)

	doc := newFakeDocument("/")
	rt, err := Mount(doc, &panicky{}, quiet())
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	defer rt.Close()

	doc.element("h1").fire("click", vdom.Event{})

	if len(console.errors) != 1 || !strings.HasPrefix(console.errors[0], "panic: boom") {
		t.Fatalf("console errors = %q, want one panic report", console.errors)
	}
	assertOps(t, doc, "html body", "text h1 1")
}

// fetchPage requests path from h, following redirects, and returns the final
// path and the body markup of the document.
func fetchPage(t *testing.T, h http.Handler, path string) (string, string) {
	t.Helper()
	for range 5 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code == http.StatusMovedPermanently {
			path = rec.Header().Get("Location")
			continue
		}
		doc := rec.Body.String()
		start, end := strings.Index(doc, "<body>"), strings.LastIndex(doc, "</body>")
		if start < 0 || end < start {
			t.Fatalf("GET %s: no body in %q", path, doc)
		}
		return path, doc[start+len("<body>") : end]
	}
	t.Fatalf("GET %s: too many redirects", path)
	return "", ""
}

func TestHydrateApp_ServerDocumentIsNotRewritten(t *testing.T) {
	cfg := config.New()
	cfg.SiteRoot = t.TempDir()
	srv, err := server.New(cfg, app.New(), server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("server.New() error = %v", err)
	}
	h := srv.Handler()

	for _, path := range []string{"/", "//", "/index/..", "/./", "/missing", "/missing/"} {
		final, body := fetchPage(t, h, path)

		doc := newFakeDocument(final)
		doc.load(body)
		rt, err := HydrateApp(doc, app.New(), quiet())
		if err != nil {
			t.Fatalf("%s: HydrateApp() error = %v", path, err)
		}
		rt.Close()

		if len(doc.ops) != 0 {
			t.Errorf("%s (served as %s): ops = %q, want none", path, final, doc.ops)
		}
	}
}
