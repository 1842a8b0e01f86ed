package pipeline

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdmark/internal/highlight"
)

// highlightTransformerPriority runs the pass after Goldmark's own
// transformers (footnotes use 999) so every text leaf is final.
const highlightTransformerPriority = 10000

// HighlightExtension registers the ==highlight== pass with Goldmark.
// Marks are emitted as raw ast.String nodes, so the renderer does not
// need html.WithUnsafe().
type HighlightExtension struct {
	Highlighter *highlight.Highlighter
}

// NewHighlightExtension creates a HighlightExtension. A nil highlighter
// uses a default one with tracing disabled.
func NewHighlightExtension(h *highlight.Highlighter) *HighlightExtension {
	if h == nil {
		h = highlight.New()
	}
	return &HighlightExtension{Highlighter: h}
}

// Extend implements goldmark.Extender.
func (e *HighlightExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&highlightTransformer{h: e.Highlighter}, highlightTransformerPriority),
	))
}

type highlightTransformer struct {
	h *highlight.Highlighter
}

// Transform implements parser.ASTTransformer.
func (t *highlightTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	logger := t.h.Logger()
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("highlight: transform aborted", "panic", r)
		}
	}()

	source := reader.Source()

	// Collect first: replacing nodes during ast.Walk would visit the
	// generated siblings.
	var leaves []*ast.Text
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if isCodeNode(n) {
			return ast.WalkSkipChildren, nil
		}
		coalesceTextRuns(n, source)
		if leaf, ok := n.(*ast.Text); ok {
			leaves = append(leaves, leaf)
		}
		return ast.WalkContinue, nil
	})

	for _, leaf := range leaves {
		if err := replaceTextLeaf(t.h, leaf, source); err != nil {
			logger.Debug("highlight: node skipped", "error", err)
		}
	}
}

// isCodeNode reports whether highlight syntax must be ignored under n.
func isCodeNode(n ast.Node) bool {
	switch n.Kind() {
	case ast.KindCodeSpan, ast.KindCodeBlock, ast.KindFencedCodeBlock, ast.KindHTMLBlock, ast.KindRawHTML:
		return true
	}
	return false
}

// coalesceTextRuns merges adjacent text children of parent that cover
// contiguous source on one line. Goldmark leaves unmatched emphasis
// delimiters, and the tail after its last inline trigger, as separate
// leaves, which would split a span across nodes. Runs without a "=="
// marker are left as parsed.
func coalesceTextRuns(parent ast.Node, source []byte) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		first, ok := c.(*ast.Text)
		if !ok || !mergeableText(first) {
			continue
		}

		last := first
		var rest []*ast.Text
		for next := first.NextSibling(); next != nil; next = next.NextSibling() {
			t, ok := next.(*ast.Text)
			if !ok || !mergeableText(t) || last.SoftLineBreak() || last.HardLineBreak() ||
				last.Segment.Stop != t.Segment.Start {
				break
			}
			rest = append(rest, t)
			last = t
		}
		if len(rest) == 0 {
			continue
		}

		seg := first.Segment.WithStop(last.Segment.Stop)
		if !bytes.Contains(seg.Value(source), []byte("==")) {
			c = last
			continue
		}

		first.Segment = seg
		first.SetSoftLineBreak(last.SoftLineBreak())
		first.SetHardLineBreak(last.HardLineBreak())
		for _, t := range rest {
			parent.RemoveChild(parent, t)
		}
	}
}

// mergeableText reports whether t renders straight from its source segment.
func mergeableText(t *ast.Text) bool {
	return !t.IsRaw() && t.Segment.Padding == 0
}

// replaceTextLeaf swaps leaf for the fragments produced by the highlighter.
// Text fragments become sub-segments of the original leaf, so Goldmark
// still resolves entities and escapes in them as authored.
func replaceTextLeaf(h *highlight.Highlighter, leaf *ast.Text, source []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing text node: %v", r)
		}
	}()

	parent := leaf.Parent()
	if parent == nil || leaf.IsRaw() || leaf.Segment.Padding > 0 {
		return nil
	}

	seg := leaf.Segment
	frags, changed := h.Process(string(seg.Value(source)))
	if !changed {
		return nil
	}

	var last ast.Node
	for _, f := range frags {
		var n ast.Node
		if f.Kind == highlight.FragmentRaw {
			s := ast.NewString([]byte(f.Value))
			s.SetCode(true)
			n = s
		} else {
			n = ast.NewTextSegment(text.NewSegment(seg.Start+f.Start, seg.Start+f.End))
		}
		parent.InsertBefore(parent, leaf, n)
		last = n
	}

	if leaf.SoftLineBreak() || leaf.HardLineBreak() {
		tail, ok := last.(*ast.Text)
		if !ok {
			tail = ast.NewTextSegment(text.NewSegment(seg.Stop, seg.Stop))
			parent.InsertBefore(parent, leaf, tail)
		}
		tail.SetSoftLineBreak(leaf.SoftLineBreak())
		tail.SetHardLineBreak(leaf.HardLineBreak())
	}

	parent.RemoveChild(parent, leaf)
	return nil
}
