// Package client runs the component tree in the browser.
//
// Hydrate attaches event listeners to markup the server already rendered,
// matching elements by their data-hid attribute. Mount renders the tree into
// an empty body first. Either way the returned Runtime re-renders after every
// event handler, diffs the new tree against the previous one and applies the
// resulting patches to the DOM.
//
// The DOM is reached through the Document and Element interfaces. The
// syscall/js implementation is only compiled for js/wasm; tests use an
// in-memory document.
package client
