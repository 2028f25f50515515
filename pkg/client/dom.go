package client

import "github.com/chatbot-dev/chatbot/pkg/vdom"

// Document is the part of the browser document the runtime needs.
type Document interface {
	// Body returns the document body.
	Body() Element

	// Pathname returns location.pathname.
	Pathname() string

	// QueryHID returns the element carrying the hydration ID, or nil.
	QueryHID(hid string) Element

	SetTitle(title string)
}

// Element is a DOM element.
type Element interface {
	SetTextContent(text string)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	SetInnerHTML(html string)

	// ReplaceWith replaces the element, including itself, with the markup.
	ReplaceWith(html string)

	// AddEventListener registers fn for the DOM event type and returns a
	// function removing it again.
	AddEventListener(typ string, fn func(vdom.Event)) (remove func())
}

// Console is the browser's diagnostic console.
type Console interface {
	Log(msg string)
	Error(msg string)
}
