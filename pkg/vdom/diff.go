package vdom

import (
	"fmt"
	"sort"
)

// Diff compares two expanded trees and returns the patches needed to
// transform prev into next. HIDs of matched nodes are copied from prev to
// next. Nodes inside replaced subtrees keep no HID; callers assign fresh ones
// with AssignHIDs before rendering the replacement.
func Diff(prev, next *VNode) []Patch {
	d := &differ{}
	if d.children(rootOf(prev), rootOf(next)) {
		return d.patches
	}
	return []Patch{{Op: PatchReplaceNode, Node: next}}
}

func rootOf(node *VNode) *VNode {
	root := &VNode{Kind: KindElement}
	if node == nil {
		return root
	}
	if node.Kind == KindFragment {
		root.Children = node.Children
		return root
	}
	root.Children = []*VNode{node}
	return root
}

type differ struct {
	patches []Patch
}

// element reconciles two elements with the same position. It returns false
// when the change must be handled by an ancestor.
func (d *differ) element(prev, next *VNode) bool {
	if prev.Tag != next.Tag {
		return false
	}
	// A handler appearing on an element the DOM has no data-hid for cannot
	// be bound in place.
	if prev.HID == "" && next.IsInteractive() {
		return false
	}
	next.HID = prev.HID

	mark := len(d.patches)
	if d.attrs(prev, next) && d.children(prev, next) {
		return true
	}
	if next.HID == "" {
		d.patches = d.patches[:mark]
		return false
	}
	d.patches = append(d.patches[:mark], Patch{
		Op:   PatchReplaceNode,
		HID:  next.HID,
		Node: next,
	})
	return true
}

// attrs emits attribute patches. Elements without a HID cannot be addressed,
// so any difference on them is reported as a mismatch.
func (d *differ) attrs(prev, next *VNode) bool {
	var keys []string
	seen := make(map[string]bool)
	for k := range prev.Props {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range next.Props {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		if isEventKey(k) {
			continue
		}
		pv, hadPrev := attrValue(prev.Props[k])
		nv, hasNext := attrValue(next.Props[k])
		if hadPrev == hasNext && pv == nv {
			continue
		}
		if next.HID == "" {
			return false
		}
		if !hasNext {
			d.patches = append(d.patches, Patch{Op: PatchRemoveAttr, HID: next.HID, Key: k})
			continue
		}
		d.patches = append(d.patches, Patch{Op: PatchSetAttr, HID: next.HID, Key: k, Value: nv})
	}
	return true
}

// attrValue returns the rendered attribute value and whether the attribute
// is present at all.
func attrValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case bool:
		if !val {
			return "", false
		}
		return "", true
	case string:
		return val, true
	default:
		return fmt.Sprint(val), true
	}
}

func (d *differ) children(prev, next *VNode) bool {
	if len(prev.Children) != len(next.Children) {
		return false
	}

	// A lone text child can be updated through its parent's textContent.
	if len(prev.Children) == 1 && prev.Children[0].Kind == KindText && next.Children[0].Kind == KindText {
		if prev.Children[0].Text == next.Children[0].Text {
			return true
		}
		if next.HID == "" {
			return false
		}
		d.patches = append(d.patches, Patch{
			Op:    PatchSetText,
			HID:   next.HID,
			Value: next.Children[0].Text,
		})
		return true
	}

	for i, p := range prev.Children {
		n := next.Children[i]
		if p.Kind != n.Kind || p.Key != n.Key {
			return false
		}
		switch p.Kind {
		case KindElement:
			if !d.element(p, n) {
				return false
			}
		default:
			if p.Text != n.Text {
				return false
			}
		}
	}
	return true
}
