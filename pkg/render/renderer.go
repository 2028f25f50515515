package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chatbot-dev/chatbot/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// HIDs continues an existing sequence instead of starting at h1. The
	// browser runtime passes its own generator so that nodes inserted after
	// an update get fresh IDs.
	HIDs *vdom.HIDGenerator
}

// Renderer writes VNode trees as HTML. A Renderer is not safe for concurrent
// use; the server creates one per request.
type Renderer struct {
	hids *vdom.HIDGenerator
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	hids := config.HIDs
	if hids == nil {
		hids = vdom.NewHIDGenerator()
	}
	return &Renderer{hids: hids}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to w. The input tree is not modified;
// nodes that already carry a HID keep it.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	tree := vdom.Expand(node)
	vdom.AssignHIDs(tree, r.hids)
	return r.renderNode(w, tree)
}

func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("render: unexpected %s node", node.Kind)
	}
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode) error {
	if _, err := io.WriteString(w, "<"+node.Tag); err != nil {
		return err
	}
	if err := writeAttributes(w, node.Props); err != nil {
		return err
	}
	if node.HID != "" {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, vdom.HIDAttr, node.HID); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(node.Tag) {
		return nil
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</"+node.Tag+">")
	return err
}

// writeAttributes writes props in key order. Event handlers are bound by the
// browser runtime and never rendered. A bool value renders as a bare
// attribute when true and is omitted when false.
func writeAttributes(w io.Writer, props vdom.Props) error {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]
		if vdom.IsHandler(value) {
			continue
		}

		var err error
		switch v := value.(type) {
		case nil:
			continue
		case bool:
			if !v {
				continue
			}
			_, err = io.WriteString(w, " "+key)
		case string:
			_, err = fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(v))
		default:
			_, err = fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(fmt.Sprint(v)))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
