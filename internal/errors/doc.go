// Package errors provides coded, categorised errors for the chatbot server.
//
// Every failure that can abort startup or surface in a response carries a
// stable code (e.g. "E101") registered in this package. The code maps to a
// short message, a longer detail and a category:
//
//   - config: the runtime options file is missing, malformed or invalid
//   - server: the listener could not bind, a page could not be rendered
//   - assets: a static asset could not be found or its source failed
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail("No chatbot.toml found in /srv/app").
//	    WithSuggestion("Pass --config or create chatbot.toml")
//
// Errors implement Unwrap so errors.Is and errors.As from the standard
// library keep working through Wrap.
package errors
