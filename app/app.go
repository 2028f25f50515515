// Package app holds the chatbot component tree: its pages and the page shown
// for unknown paths.
package app

import (
	"github.com/chatbot-dev/chatbot/pkg/reactive"
	"github.com/chatbot-dev/chatbot/pkg/vdom"
)

// Name is the application name shown in titles and headings.
const Name = "Chatbot"

// Page is one routable screen of the application.
type Page struct {
	Path  string
	Title string

	// View builds a fresh instance of the page with its own state. The
	// server calls it once per request, the browser once per load.
	View func() vdom.Component
}

// Root is the application component tree.
type Root struct {
	Pages    []Page
	NotFound Page
}

// New returns the application tree.
func New() *Root {
	return &Root{
		Pages: []Page{
			{Path: "/", Title: "Welcome to " + Name, View: HomePage},
		},
		NotFound: Page{Title: "Page not found", View: NotFoundPage},
	}
}

// Watcher is implemented by components whose state can change outside of
// event handlers. The browser runtime calls Watch once and re-renders
// whenever fn is invoked.
type Watcher interface {
	Watch(fn func()) (stop func())
}

type homePage struct {
	count *reactive.Signal[int]
}

// HomePage renders a heading and a click counter.
func HomePage() vdom.Component {
	return &homePage{count: reactive.NewSignal(0)}
}

func (p *homePage) Render() *vdom.VNode {
	return vdom.Main(
		vdom.H1(vdom.Textf("Welcome to %s!", Name)),
		vdom.Button(
			vdom.OnClick(p.increment),
			vdom.Textf("Click Me: %d", p.count.Get()),
		),
	)
}

func (p *homePage) increment() {
	p.count.Update(func(n int) int { return n + 1 })
}

func (p *homePage) Watch(fn func()) func() {
	return p.count.Subscribe(func(int) { fn() })
}

// NotFoundPage is rendered for every path without a page.
func NotFoundPage() vdom.Component {
	return vdom.Func(func() *vdom.VNode {
		return vdom.Main(
			vdom.H1(vdom.Text("Page not found")),
			vdom.P(vdom.A(vdom.Href("/"), vdom.Text("Back to the home page"))),
		)
	})
}
