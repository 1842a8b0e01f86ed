package highlight

import "testing"

func TestIsDangerousURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"javascript:alert(1)", true},
		{"JavaScript:alert(1)", true},
		{"  javascript:alert(1)", true},
		{"java\nscript:alert(1)", true},
		{"\x01javascript:x", true},
		{"data:text/html,x", true},
		{"DATA:image/png;base64,x", true},
		{"vbscript:msgbox", true},
		{"https://example.com", false},
		{"/relative/javascript:x", false},
		{"#anchor", false},
		{"mailto:a@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			if got := IsDangerousURL(tt.url); got != tt.want {
				t.Errorf("IsDangerousURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
