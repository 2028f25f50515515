package client

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

type panicHook struct {
	once    sync.Once
	mu      sync.Mutex
	console Console
}

var hook = new(panicHook)

// InstallPanicHook routes panics caught by the runtime and by Recover to
// console.Error. Only the first call has an effect; it reports whether this
// call installed the hook.
func InstallPanicHook(console Console) bool {
	installed := false
	hook.once.Do(func() {
		hook.mu.Lock()
		hook.console = console
		hook.mu.Unlock()
		installed = true
	})
	return installed
}

// Recover reports a panic to the console and panics again. Defer it at the
// top of a wasm main.
func Recover() {
	if r := recover(); r != nil {
		reportPanic(r)
		panic(r)
	}
}

// guard runs fn and reports a panic instead of propagating it. It returns
// false when fn panicked.
func guard(fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			reportPanic(r)
			ok = false
		}
	}()
	fn()
	return true
}

func reportPanic(r any) {
	msg := fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())

	hook.mu.Lock()
	console := hook.console
	hook.mu.Unlock()

	if console == nil {
		slog.Error("panic", "error", r)
		return
	}
	console.Error(msg)
}
