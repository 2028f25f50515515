// Package vdom provides the virtual DOM shared by the server renderer and the
// browser runtime.
//
// # Core Types
//
// VNode is the building block representing elements, text, fragments,
// components and raw HTML. Props holds attributes and event handlers.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"),
//	    H1(Text("Welcome")),
//	    Button(OnClick(increment), Textf("Click Me: %d", n)),
//	)
//
// # Hydration
//
// AssignHIDs walks an expanded tree in pre-order and assigns hydration IDs
// ("h1", "h2", ...) to interactive elements. The server writes them as
// data-hid attributes; the browser runtime assigns the same IDs to its own
// render of the tree and binds listeners to the matching elements.
//
// # Diffing
//
// Diff compares two expanded trees and returns patches addressed by
// hydration ID. Changes that cannot be addressed in place are escalated to a
// ReplaceNode patch on the closest interactive ancestor, or on the root.
package vdom
