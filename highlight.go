package mdmark

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/yuin/goldmark"

	"github.com/alnah/go-mdmark/internal/highlight"
	"github.com/alnah/go-mdmark/internal/pipeline"
)

// DebugEnvVar enables debug tracing of the highlight pass when set to a
// true value ("1", "true", ...).
const DebugEnvVar = "MDMARK_DEBUG"

// Node is a document tree node handled by Transform.
type Node = highlight.Node

// Kind classifies a Node.
type Kind = highlight.Kind

// Node kinds.
const (
	KindRoot          = highlight.KindRoot
	KindElement       = highlight.KindElement
	KindText          = highlight.KindText
	KindRaw           = highlight.KindRaw
	KindLiteralBlock  = highlight.KindLiteralBlock
	KindLiteralInline = highlight.KindLiteralInline
	KindCodeBlock     = highlight.KindCodeBlock
	KindOther         = highlight.KindOther
)

// NewRoot returns an empty root node.
func NewRoot() *Node { return highlight.NewRoot() }

// NewText returns a text leaf.
func NewText(value string) *Node { return highlight.NewText(value) }

// NewNode returns a container node of the given kind with children attached.
func NewNode(kind Kind, children ...*Node) *Node { return highlight.NewNode(kind, children...) }

// KindFromType maps a host parser's node type name ("text", "inlineCode",
// "code", "html", ...) to a Kind, for adapting foreign trees.
func KindFromType(name string) Kind { return highlight.KindFromType(name) }

// PlainText concatenates the text and raw leaf values under n. After
// Transform this is the highlighted markup of a text-only subtree.
func PlainText(n *Node) string { return highlight.PlainText(n) }

// Highlighter runs the ==highlight== pass. Safe for concurrent use.
type Highlighter = highlight.Highlighter

// NewHighlighter creates a Highlighter. A nil logger falls back to
// DebugLogger().
func NewHighlighter(logger *slog.Logger) *Highlighter {
	if logger == nil {
		logger = DebugLogger()
	}
	return highlight.New(highlight.WithLogger(logger))
}

// Transform runs the highlight pass over the tree rooted at root with a
// default Highlighter. See Highlighter.Transform.
func Transform(root *Node) error {
	return NewHighlighter(nil).Transform(root)
}

// Extension returns a goldmark extender that registers the highlight pass.
// Code spans, code blocks and raw HTML are left untouched.
func Extension() goldmark.Extender {
	return pipeline.NewHighlightExtension(NewHighlighter(nil))
}

// DebugLogger returns a stderr logger at debug level when MDMARK_DEBUG is
// true, and a discarding logger otherwise.
func DebugLogger() *slog.Logger {
	if !debugEnabled(os.Getenv(DebugEnvVar)) {
		return slog.New(slog.DiscardHandler)
	}
	return newDebugLogger()
}

// newDebugLogger returns a text logger writing debug records to stderr.
func newDebugLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// debugEnabled parses a debug flag value. Unparseable values are false.
func debugEnabled(v string) bool {
	on, err := strconv.ParseBool(v)
	return err == nil && on
}
