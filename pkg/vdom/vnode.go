package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
	HID      string    // Hydration ID (assigned during render)
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive returns true if this node has event handlers and needs a HID.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if isEventKey(key) {
			return true
		}
	}
	return false
}

func isEventKey(key string) bool {
	return strings.HasPrefix(key, "on") && len(key) > 2
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// Expand renders component nodes and flattens fragments into their parents.
// The result only holds elements, text and raw nodes, except for the root
// which stays a fragment when the input root is one. The input is not
// modified.
func Expand(node *VNode) *VNode {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case KindComponent:
		if node.Comp == nil {
			return nil
		}
		return Expand(node.Comp.Render())
	case KindFragment:
		return &VNode{
			Kind:     KindFragment,
			Key:      node.Key,
			Children: expandChildren(node.Children),
		}
	case KindElement:
		out := *node
		out.Children = expandChildren(node.Children)
		return &out
	default:
		out := *node
		return &out
	}
}

func expandChildren(children []*VNode) []*VNode {
	out := make([]*VNode, 0, len(children))
	for _, child := range children {
		expanded := Expand(child)
		if expanded == nil {
			continue
		}
		if expanded.Kind == KindFragment {
			out = append(out, expanded.Children...)
			continue
		}
		out = append(out, expanded)
	}
	return out
}
