package highlight

import "testing"

func TestDecodeEntities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no entities", "plain", "plain"},
		{"named", "&amp;&lt;&gt;&quot;&apos;", `&<>"'`},
		{"decimal", "&#38;&#60;&#62;&#34;&#39;", `&<>"'`},
		{"hex", "&#x26;&#x3C;&#X3e;&#x22;&#x27;", `&<>"'`},
		{"other entities kept", "&copy; &nbsp;", "&copy; &nbsp;"},
		{"bare ampersand", "a & b", "a & b"},
		{"unterminated", "&amp", "&amp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := decodeEntities(tt.input)
			if d.text != tt.expected {
				t.Errorf("decodeEntities(%q) = %q, want %q", tt.input, d.text, tt.expected)
			}
			if len(d.offsets) != len(d.text)+1 {
				t.Fatalf("offsets length = %d, want %d", len(d.offsets), len(d.text)+1)
			}
			if d.offsets[len(d.text)] != len(tt.input) {
				t.Errorf("final offset = %d, want %d", d.offsets[len(d.text)], len(tt.input))
			}
		})
	}
}

func TestDecodeEntities_RawSlice(t *testing.T) {
	t.Parallel()

	raw := "a &lt; ==b &amp; c== d"
	d := decodeEntities(raw)
	if d.text != "a < ==b & c== d" {
		t.Fatalf("decoded = %q", d.text)
	}

	start := 4 // first '=' in decoded text
	end := start + len("==b & c==")
	if got := d.rawSlice(start, end); got != "==b &amp; c==" {
		t.Errorf("rawSlice = %q, want %q", got, "==b &amp; c==")
	}
}
