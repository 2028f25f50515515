// Package reactive provides signals: value containers that notify
// subscribers when their value changes.
//
// The client runtime subscribes to the signals a page reads so that a
// handler which calls Set or Update causes exactly one re-render once the
// handler returns.
//
//	count := reactive.NewSignal(0)
//	count.Subscribe(func(n int) { fmt.Println("count is", n) })
//	count.Update(func(n int) int { return n + 1 })
package reactive
