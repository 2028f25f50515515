package client

import (
	"regexp"
	"sync"

	"github.com/chatbot-dev/chatbot/pkg/vdom"
)

var hidPattern = regexp.MustCompile(vdom.HIDAttr + `="([^"]+)"`)

// fakeDocument tracks elements by data-hid, found by scanning the markup
// written into it. Mutations are recorded in order.
type fakeDocument struct {
	path     string
	title    string
	body     *fakeElement
	elements map[string]*fakeElement
	ops      []string
}

func newFakeDocument(path string) *fakeDocument {
	d := &fakeDocument{path: path, elements: make(map[string]*fakeElement)}
	d.body = &fakeElement{doc: d, hid: "body"}
	return d
}

// load sets the body markup without recording a mutation, the way the
// browser parses the server response.
func (d *fakeDocument) load(html string) {
	d.body.html = html
	d.elements = make(map[string]*fakeElement)
	d.scan(html)
}

func (d *fakeDocument) scan(html string) {
	for _, m := range hidPattern.FindAllStringSubmatch(html, -1) {
		d.elements[m[1]] = &fakeElement{doc: d, hid: m[1]}
	}
}

func (d *fakeDocument) Body() Element    { return d.body }
func (d *fakeDocument) Pathname() string { return d.path }
func (d *fakeDocument) SetTitle(t string) {
	d.title = t
	d.ops = append(d.ops, "title "+t)
}

func (d *fakeDocument) QueryHID(hid string) Element {
	if el, ok := d.elements[hid]; ok {
		return el
	}
	return nil
}

func (d *fakeDocument) element(hid string) *fakeElement {
	return d.elements[hid]
}

type fakeElement struct {
	doc   *fakeDocument
	hid   string
	html  string
	text  string
	attrs map[string]string

	mu        sync.Mutex
	listeners map[string][]*func(vdom.Event)
}

func (e *fakeElement) SetTextContent(text string) {
	e.text = text
	e.doc.ops = append(e.doc.ops, "text "+e.hid+" "+text)
}

func (e *fakeElement) SetAttribute(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	e.doc.ops = append(e.doc.ops, "attr "+e.hid+" "+name+"="+value)
}

func (e *fakeElement) RemoveAttribute(name string) {
	delete(e.attrs, name)
	e.doc.ops = append(e.doc.ops, "rmattr "+e.hid+" "+name)
}

func (e *fakeElement) SetInnerHTML(html string) {
	e.html = html
	e.doc.ops = append(e.doc.ops, "html "+e.hid)
	if e == e.doc.body {
		e.doc.elements = make(map[string]*fakeElement)
	}
	e.doc.scan(html)
}

func (e *fakeElement) ReplaceWith(html string) {
	delete(e.doc.elements, e.hid)
	e.doc.ops = append(e.doc.ops, "replace "+e.hid)
	e.doc.scan(html)
}

func (e *fakeElement) AddEventListener(typ string, fn func(vdom.Event)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[string][]*func(vdom.Event))
	}
	p := &fn
	e.listeners[typ] = append(e.listeners[typ], p)
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		list := e.listeners[typ]
		for i, q := range list {
			if q == p {
				e.listeners[typ] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

func (e *fakeElement) listenerCount(typ string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[typ])
}

// fire calls the listeners registered for typ.
func (e *fakeElement) fire(typ string, ev vdom.Event) {
	e.mu.Lock()
	list := append([]*func(vdom.Event){}, e.listeners[typ]...)
	e.mu.Unlock()

	ev.Type = typ
	for _, fn := range list {
		(*fn)(ev)
	}
}

type fakeConsole struct {
	logs   []string
	errors []string
}

func (c *fakeConsole) Log(msg string)   { c.logs = append(c.logs, msg) }
func (c *fakeConsole) Error(msg string) { c.errors = append(c.errors, msg) }
