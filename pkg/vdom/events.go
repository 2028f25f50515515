package vdom

import "sort"

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // func() or func(Event)
}

// Event carries the browser event data handed to handlers.
type Event struct {
	// Type is the DOM event type without the "on" prefix (e.g. "click").
	Type string

	// Value is the target's value for input and change events.
	Value string

	// Key is the pressed key for keyboard events.
	Key string
}

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnInput handles input events (fired when value changes).
func OnInput(handler any) EventHandler { return event("input", handler) }

// Events returns the DOM event types ("click", "input", ...) the node has
// handlers for, sorted.
func Events(node *VNode) []string {
	if node == nil {
		return nil
	}
	var events []string
	for key, value := range node.Props {
		if isEventKey(key) && IsHandler(value) {
			events = append(events, key[2:])
		}
	}
	sort.Strings(events)
	return events
}

// IsHandler reports whether value is a supported handler signature.
func IsHandler(value any) bool {
	switch value.(type) {
	case func(), func(Event):
		return true
	default:
		return false
	}
}

// Invoke calls the node's handler for the event type. It returns false when
// the node has no handler for it.
func Invoke(node *VNode, ev Event) bool {
	if node == nil {
		return false
	}
	switch h := node.Props["on"+ev.Type].(type) {
	case func():
		h()
	case func(Event):
		h(ev)
	default:
		return false
	}
	return true
}
