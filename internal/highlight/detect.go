package highlight

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxSpanLength caps the content of a single span, in characters.
// Longer spans are left as authored.
const MaxSpanLength = 10000

var (
	// spanPattern matches a candidate span. The content excludes '=' and
	// newlines so a match never swallows a neighbouring marker.
	spanPattern = regexp.MustCompile(`==([^=\n]+)==`)

	// multilineSpan finds spans whose content crosses a line break.
	multilineSpan = regexp.MustCompile(`==([^=]+)==`)

	// codeMarker matches raw, entity-escaped and backslash-escaped <code> tags.
	codeMarker = regexp.MustCompile(`(?i)(?:\\?<|&lt;)/?code(?:>|&gt;)`)
)

// Span is a ==...== region found in decoded text.
// Start and End are offsets into the raw text.
type Span struct {
	Start int
	End   int
	Raw   string // the whole match, as authored
	Inner string // content between the markers, as authored
}

// rejection explains why a span or a whole text was not highlighted.
type rejection string

const (
	rejectNone          rejection = ""
	rejectEqualsRun     rejection = "run of three or more '='"
	rejectMultiline     rejection = "span content contains a newline"
	rejectAdjacentEqual rejection = "marker adjacent to '='"
	rejectBlank         rejection = "empty or whitespace-only content"
	rejectTooLong       rejection = "content exceeds maximum length"
)

// validateText applies the whole-text rules. A non-empty rejection means
// the text must be left untouched.
func validateText(text string) rejection {
	if strings.Contains(text, "===") {
		return rejectEqualsRun
	}
	for _, m := range multilineSpan.FindAllStringSubmatch(text, -1) {
		if strings.Contains(m[1], "\n") {
			return rejectMultiline
		}
	}
	return rejectNone
}

// candidate is a matched span before per-span validation.
type candidate struct {
	span   Span
	reason rejection
}

// detectSpans scans d for spans left to right. Every match is returned;
// those failing a per-span rule carry the reason.
func detectSpans(d decoded) []candidate {
	text := d.text
	matches := spanPattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]candidate, 0, len(matches))

	for _, m := range matches {
		start, end, innerStart, innerEnd := m[0], m[1], m[2], m[3]
		c := candidate{span: Span{
			Start: d.rawOffset(start),
			End:   d.rawOffset(end),
			Raw:   d.rawSlice(start, end),
			Inner: d.rawSlice(innerStart, innerEnd),
		}}

		inner := text[innerStart:innerEnd]
		switch {
		case (start > 0 && text[start-1] == '=') || (end < len(text) && text[end] == '='):
			c.reason = rejectAdjacentEqual
		case strings.TrimSpace(inner) == "":
			c.reason = rejectBlank
		case utf8.RuneCountInString(inner) > MaxSpanLength:
			c.reason = rejectTooLong
		}
		out = append(out, c)
	}
	return out
}
