package pipeline

import (
	"context"
	"testing"
)

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "CRLF normalized",
			input:    "a\r\nb\r\n",
			expected: "a\nb\n",
		},
		{
			name:     "lone CR normalized",
			input:    "a\rb",
			expected: "a\nb",
		},
		{
			name:     "blank lines compressed",
			input:    "a\n\n\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "CRLF blank lines compressed",
			input:    "a\r\n\r\n\r\n\r\nb",
			expected: "a\n\nb",
		},
		{
			name:     "highlight syntax untouched",
			input:    "==keep== `==code==`",
			expected: "==keep== `==code==`",
		},
	}

	p := &CommonMarkPreprocessor{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.PreprocessMarkdown(context.Background(), tt.input)
			if got != tt.expected {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPreprocessMarkdown_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "a\r\n\r\n\r\n\r\nb"
	if got := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, input); got != input {
		t.Errorf("PreprocessMarkdown() with cancelled context = %q, want input unchanged", got)
	}
}
