package vdom

import "testing"

func TestHIDGenerator(t *testing.T) {
	t.Run("sequential generation", func(t *testing.T) {
		gen := NewHIDGenerator()
		for _, want := range []string{"h1", "h2", "h3"} {
			if got := gen.Next(); got != want {
				t.Errorf("Next() = %v, want %v", got, want)
			}
		}
	})
}

func TestAssignHIDs(t *testing.T) {
	tree := Div(
		H1(Text("Title")),
		Button(OnClick(func() {}), Text("Click")),
		Div(Input(OnInput(func() {}))),
	)

	AssignHIDs(tree, NewHIDGenerator())

	if tree.HID != "" {
		t.Errorf("non-interactive div got HID %q", tree.HID)
	}
	if tree.Children[0].HID != "" {
		t.Errorf("h1 got HID %q", tree.Children[0].HID)
	}
	if tree.Children[1].HID != "h1" {
		t.Errorf("button HID = %q, want h1", tree.Children[1].HID)
	}
	if tree.Children[2].Children[0].HID != "h2" {
		t.Errorf("input HID = %q, want h2", tree.Children[2].Children[0].HID)
	}
}

func TestAssignHIDs_KeepsExisting(t *testing.T) {
	tree := Div(Button(OnClick(func() {})), Button(OnClick(func() {})))
	tree.Children[0].HID = "h7"

	gen := NewHIDGenerator()
	AssignHIDs(tree, gen)

	if tree.Children[0].HID != "h7" {
		t.Errorf("existing HID overwritten: %q", tree.Children[0].HID)
	}
	if tree.Children[1].HID != "h1" {
		t.Errorf("second button HID = %q, want h1", tree.Children[1].HID)
	}
}

func TestCollectAndFind(t *testing.T) {
	tree := Div(
		Button(OnClick(func() {})),
		Span(A(OnClick(func() {}))),
	)
	AssignHIDs(tree, NewHIDGenerator())

	hids := CollectHIDs(tree)
	if len(hids) != 2 {
		t.Fatalf("CollectHIDs() returned %d entries, want 2", len(hids))
	}
	if hids["h2"].Tag != "a" {
		t.Errorf("h2 tag = %q, want a", hids["h2"].Tag)
	}
	if FindByHID(tree, "h1") != tree.Children[0] {
		t.Error("FindByHID(h1) did not return the button")
	}
	if FindByHID(tree, "h9") != nil {
		t.Error("FindByHID(h9) should be nil")
	}
}
