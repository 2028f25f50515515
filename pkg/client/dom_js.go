//go:build js && wasm

package client

import (
	"syscall/js"

	"github.com/chatbot-dev/chatbot/pkg/vdom"
)

// NewDocument returns the global document.
func NewDocument() Document {
	return jsDocument{doc: js.Global().Get("document")}
}

// NewConsole returns the global console.
func NewConsole() Console {
	return jsConsole{console: js.Global().Get("console")}
}

type jsDocument struct {
	doc js.Value
}

func (d jsDocument) Body() Element {
	return jsElement{v: d.doc.Get("body")}
}

func (d jsDocument) Pathname() string {
	return js.Global().Get("location").Get("pathname").String()
}

func (d jsDocument) QueryHID(hid string) Element {
	el := d.doc.Call("querySelector", "["+vdom.HIDAttr+"=\""+hid+"\"]")
	if el.IsNull() || el.IsUndefined() {
		return nil
	}
	return jsElement{v: el}
}

func (d jsDocument) SetTitle(title string) {
	d.doc.Set("title", title)
}

type jsElement struct {
	v js.Value
}

func (e jsElement) SetTextContent(text string)      { e.v.Set("textContent", text) }
func (e jsElement) SetAttribute(name, value string) { e.v.Call("setAttribute", name, value) }
func (e jsElement) RemoveAttribute(name string)     { e.v.Call("removeAttribute", name) }
func (e jsElement) SetInnerHTML(html string)        { e.v.Set("innerHTML", html) }
func (e jsElement) ReplaceWith(html string)         { e.v.Set("outerHTML", html) }

func (e jsElement) AddEventListener(typ string, fn func(vdom.Event)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := vdom.Event{Type: typ}
		if len(args) > 0 {
			native := args[0]
			if typ == "submit" {
				native.Call("preventDefault")
			}
			if key := native.Get("key"); key.Type() == js.TypeString {
				ev.Key = key.String()
			}
			if target := native.Get("target"); target.Truthy() {
				if value := target.Get("value"); value.Type() == js.TypeString {
					ev.Value = value.String()
				}
			}
		}
		fn(ev)
		return nil
	})
	e.v.Call("addEventListener", typ, cb)
	return func() {
		e.v.Call("removeEventListener", typ, cb)
		cb.Release()
	}
}

type jsConsole struct {
	console js.Value
}

func (c jsConsole) Log(msg string)   { c.console.Call("log", msg) }
func (c jsConsole) Error(msg string) { c.console.Call("error", msg) }
