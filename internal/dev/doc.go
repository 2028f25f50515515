// Package dev implements live reload for development builds.
//
// A Watcher follows the site root with fsnotify and reports debounced
// changes. A ReloadServer keeps websocket connections from open pages on
// 127.0.0.1:<reload-port>/live_reload and tells them to reload.
//
// Messages are JSON-encoded:
//
//	{"type": "reload"}                      // full page reload
//	{"type": "css", "file": "main.css"}     // stylesheet refresh only
//
// Both pieces run only when the environment is DEV and reload-port is
// non-zero.
package dev
