package client

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/chatbot-dev/chatbot/app"
	"github.com/chatbot-dev/chatbot/internal/errors"
	"github.com/chatbot-dev/chatbot/pkg/render"
	"github.com/chatbot-dev/chatbot/pkg/vdom"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the runtime logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// Runtime keeps a mounted component tree in sync with the DOM.
type Runtime struct {
	doc    Document
	root   vdom.Component
	hids   *vdom.HIDGenerator
	logger *slog.Logger

	mu          sync.Mutex
	tree        *vdom.VNode
	listeners   map[listenerKey]func()
	dispatching atomic.Bool
	stopWatch   func()
}

type listenerKey struct {
	hid   string
	event string
}

func newRuntime(doc Document, root vdom.Component, opts []Option) *Runtime {
	r := &Runtime{
		doc:       doc,
		root:      root,
		hids:      vdom.NewHIDGenerator(),
		listeners: make(map[listenerKey]func()),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default().With("component", "client")
	}
	return r
}

// Hydrate attaches root to the server-rendered body of doc. The DOM is not
// modified. It fails with E401 when an interactive element of the tree has
// no counterpart in the document.
func Hydrate(doc Document, root vdom.Component, opts ...Option) (*Runtime, error) {
	r := newRuntime(doc, root, opts)

	tree, err := r.render()
	if err != nil {
		return nil, err
	}
	vdom.AssignHIDs(tree, r.hids)
	for hid := range vdom.CollectHIDs(tree) {
		if doc.QueryHID(hid) == nil {
			return nil, errors.New("E401").
				WithDetail(fmt.Sprintf("No element with %s=%q in the document.", vdom.HIDAttr, hid))
		}
	}

	r.tree = tree
	r.bindAll()
	r.watch()
	return r, nil
}

// Mount renders root into the body of doc, replacing its content.
func Mount(doc Document, root vdom.Component, opts ...Option) (*Runtime, error) {
	r := newRuntime(doc, root, opts)

	tree, err := r.render()
	if err != nil {
		return nil, err
	}
	html, err := r.html(tree)
	if err != nil {
		return nil, err
	}
	doc.Body().SetInnerHTML(html)

	r.tree = tree
	r.bindAll()
	r.watch()
	return r, nil
}

// Close removes all listeners and stops watching component state.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopWatch != nil {
		r.stopWatch()
		r.stopWatch = nil
	}
	r.unbindAll()
}

// render expands the component. A panicking component is reported as E202.
func (r *Runtime) render() (*vdom.VNode, error) {
	var node *vdom.VNode
	if !guard(func() { node = vdom.Expand(r.root.Render()) }) {
		return nil, errors.New("E202").WithDetail("The component panicked while rendering.")
	}
	return node, nil
}

// html assigns HIDs to nodes lacking one, continuing the runtime's sequence,
// and renders the tree.
func (r *Runtime) html(tree *vdom.VNode) (string, error) {
	vdom.AssignHIDs(tree, r.hids)
	html, err := render.NewRenderer(render.RendererConfig{HIDs: r.hids}).RenderToString(tree)
	if err != nil {
		return "", errors.New("E202").Wrap(err)
	}
	return html, nil
}

func (r *Runtime) watch() {
	w, ok := r.root.(app.Watcher)
	if !ok {
		return
	}
	r.stopWatch = w.Watch(func() {
		// Handlers re-render once they return.
		if r.dispatching.Load() {
			return
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		r.update()
	})
}

// dispatch runs the handler of the element hid for ev and re-renders.
func (r *Runtime) dispatch(hid string, ev vdom.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := vdom.FindByHID(r.tree, hid)
	if node == nil {
		r.logger.Warn("event for unknown element", "hid", hid, "event", ev.Type)
		return
	}

	r.dispatching.Store(true)
	guard(func() { vdom.Invoke(node, ev) })
	r.dispatching.Store(false)

	r.update()
}

// update re-renders and patches the DOM. r.mu must be held.
func (r *Runtime) update() {
	next, err := r.render()
	if err != nil {
		r.logger.Error("render failed", "error", err)
		return
	}

	patches := vdom.Diff(r.tree, next)
	if len(patches) == 0 {
		r.tree = next
		return
	}
	vdom.AssignHIDs(next, r.hids)

	replaced := false
	for _, p := range patches {
		if err := r.apply(p); err != nil {
			r.logger.Error("patch failed", "op", p.Op.String(), "hid", p.HID, "error", err)
		}
		if p.Op == vdom.PatchReplaceNode {
			replaced = true
		}
	}
	r.tree = next

	if replaced {
		r.unbindAll()
		r.bindAll()
	} else {
		r.syncListeners()
	}
}

func (r *Runtime) apply(p vdom.Patch) error {
	if p.Op == vdom.PatchReplaceNode && p.HID == "" {
		html, err := r.html(p.Node)
		if err != nil {
			return err
		}
		r.doc.Body().SetInnerHTML(html)
		return nil
	}

	el := r.doc.QueryHID(p.HID)
	if el == nil {
		return errors.New("E401").WithDetail(fmt.Sprintf("No element with %s=%q.", vdom.HIDAttr, p.HID))
	}

	switch p.Op {
	case vdom.PatchSetText:
		el.SetTextContent(p.Value)
	case vdom.PatchSetAttr:
		el.SetAttribute(p.Key, p.Value)
	case vdom.PatchRemoveAttr:
		el.RemoveAttribute(p.Key)
	case vdom.PatchReplaceNode:
		html, err := r.html(p.Node)
		if err != nil {
			return err
		}
		el.ReplaceWith(html)
	default:
		return fmt.Errorf("unknown patch op %d", p.Op)
	}
	return nil
}

// wanted lists the listeners the current tree needs, in a stable order.
func (r *Runtime) wanted() []listenerKey {
	var keys []listenerKey
	for hid, node := range vdom.CollectHIDs(r.tree) {
		for _, event := range vdom.Events(node) {
			keys = append(keys, listenerKey{hid: hid, event: event})
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].hid != keys[j].hid {
			return keys[i].hid < keys[j].hid
		}
		return keys[i].event < keys[j].event
	})
	return keys
}

func (r *Runtime) bind(key listenerKey) {
	el := r.doc.QueryHID(key.hid)
	if el == nil {
		r.logger.Warn("listener target missing", "hid", key.hid, "event", key.event)
		return
	}
	hid := key.hid
	r.listeners[key] = el.AddEventListener(key.event, func(ev vdom.Event) {
		r.dispatch(hid, ev)
	})
}

func (r *Runtime) bindAll() {
	for _, key := range r.wanted() {
		r.bind(key)
	}
}

func (r *Runtime) unbindAll() {
	for key, remove := range r.listeners {
		remove()
		delete(r.listeners, key)
	}
}

// syncListeners binds listeners for handlers that appeared and removes the
// ones whose handler went away.
func (r *Runtime) syncListeners() {
	keep := make(map[listenerKey]bool)
	for _, key := range r.wanted() {
		keep[key] = true
		if _, ok := r.listeners[key]; !ok {
			r.bind(key)
		}
	}
	for key, remove := range r.listeners {
		if !keep[key] {
			remove()
			delete(r.listeners, key)
		}
	}
}
