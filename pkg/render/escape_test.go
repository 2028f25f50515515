package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{"<b>", "&lt;b&gt;"},
		{`"q" 'a'`, "&quot;q&quot; &#39;a&#39;"},
		{"line\nbreak", "line\nbreak"},
		{"日本語", "日本語"},
	}
	for _, tt := range tests {
		if got := escapeHTML(tt.in); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`x" onload="y`, "x&quot; onload=&quot;y"},
		{"a\nb\rc\td", "a&#10;b&#13;c&#9;d"},
		{"&amp;", "&amp;amp;"},
	}
	for _, tt := range tests {
		if got := escapeAttr(tt.in); got != tt.want {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
