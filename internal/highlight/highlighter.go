package highlight

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// FragmentKind tells whether a fragment is escaped text or raw markup.
type FragmentKind int

const (
	FragmentText FragmentKind = iota
	FragmentRaw
)

// Fragment is one output unit of a processed text leaf.
// For text fragments, Start and End locate Value in the leaf's raw text.
type Fragment struct {
	Kind  FragmentKind
	Value string
	Start int
	End   int
}

// Mark tags wrapping every rendered span.
const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlighter runs the highlight pass. It holds no per-document state and
// is safe for concurrent use.
type Highlighter struct {
	logger *slog.Logger
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithLogger sets the logger used for debug tracing. A nil logger
// disables tracing.
func WithLogger(l *slog.Logger) Option {
	return func(h *Highlighter) {
		if l == nil {
			l = discardLogger()
		}
		h.logger = l
	}
}

// New creates a Highlighter. Without WithLogger, tracing is discarded.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{logger: discardLogger()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Logger returns the logger used for debug tracing.
func (h *Highlighter) Logger() *slog.Logger {
	return h.logger
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Process splits raw text into fragments. The boolean is false when the
// text needs no replacement, in which case the fragments hold the text
// unchanged as a single text fragment.
func (h *Highlighter) Process(raw string) ([]Fragment, bool) {
	unchanged := []Fragment{{Kind: FragmentText, Value: raw, Start: 0, End: len(raw)}}

	if reason := skipReason(raw); reason != "" {
		if reason != skipNoMarker {
			h.logger.Debug("highlight: text skipped", "reason", reason)
		}
		return unchanged, false
	}

	d := decodeEntities(raw)
	if reason := validateText(d.text); reason != rejectNone {
		h.logger.Debug("highlight: text rejected", "reason", string(reason), "text", truncate(raw))
		return unchanged, false
	}

	var frags []Fragment
	cursor := 0
	for _, c := range detectSpans(d) {
		if c.reason != rejectNone {
			h.logger.Debug("highlight: span rejected", "reason", string(c.reason), "span", truncate(c.span.Raw))
			continue
		}
		if c.span.Start > cursor {
			frags = append(frags, textFragment(raw, cursor, c.span.Start))
		}
		frags = append(frags, Fragment{
			Kind:  FragmentRaw,
			Value: renderSpan(c.span.Inner),
			Start: c.span.Start,
			End:   c.span.End,
		})
		h.logger.Debug("highlight: span rendered", "span", truncate(c.span.Raw))
		cursor = c.span.End
	}

	if len(frags) == 0 {
		return unchanged, false
	}
	if cursor < len(raw) {
		frags = append(frags, textFragment(raw, cursor, len(raw)))
	}
	return frags, true
}

// renderSpan turns authored span content into the final <mark> markup.
func renderSpan(inner string) string {
	return markOpen + escapeFragment(renderInline(strings.TrimSpace(inner))) + markClose
}

func textFragment(raw string, start, end int) Fragment {
	return Fragment{Kind: FragmentText, Value: raw[start:end], Start: start, End: end}
}

// Skip reasons checked before any decoding.
const (
	skipNoMarker   = "no == marker"
	skipCodeMarker = "contains a <code> tag literal"
)

func skipReason(raw string) string {
	if !strings.Contains(raw, "==") {
		return skipNoMarker
	}
	if codeMarker.MatchString(raw) {
		return skipCodeMarker
	}
	return ""
}

// truncate shortens text for log attributes, cutting on a rune boundary.
func truncate(s string) string {
	const limit = 80
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
