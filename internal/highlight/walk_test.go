package highlight

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func paragraph(children ...*Node) *Node {
	return NewNode(KindElement, children...)
}

func TestTransform_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expected  string
		wantMarks int
	}{
		{"surrounding text", "before ==hello== after", "before <mark>hello</mark> after", 1},
		{"two spans", "==a== ==b==", "<mark>a</mark> <mark>b</mark>", 2},
		{"equals run", "==foo === bar==", "==foo === bar==", 0},
		{"inline markup", "==`code` and **bold**==", "<mark><code>code</code> and <strong>bold</strong></mark>", 1},
		{"dangerous link", "==[click](javascript:alert(1))==", `<mark><a href="#">click</a></mark>`, 1},
	}

	h := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := NewRoot().Append(paragraph(NewText(tt.input)))
			if err := h.Transform(root); err != nil {
				t.Fatalf("Transform() error = %v", err)
			}

			if got := PlainText(root); got != tt.expected {
				t.Errorf("Transform(%q) = %q, want %q", tt.input, got, tt.expected)
			}

			marks := 0
			Walk(root, func(n *Node) bool {
				if n.Kind == KindRaw && strings.HasPrefix(n.Value, "<mark>") {
					marks++
				}
				return true
			})
			if marks != tt.wantMarks {
				t.Errorf("got %d mark nodes, want %d", marks, tt.wantMarks)
			}
		})
	}
}

func TestTransform_ReplacesInPlace(t *testing.T) {
	t.Parallel()

	first := NewText("first ")
	target := NewText("before ==hello== after")
	last := NewText(" last")
	p := paragraph(first, target, last)
	root := NewRoot().Append(p)

	if err := New().Transform(root); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if len(p.Children) != 5 {
		t.Fatalf("got %d children, want 5", len(p.Children))
	}
	if p.Children[0] != first || p.Children[4] != last {
		t.Error("siblings of the replaced node moved")
	}

	wantKinds := []Kind{KindText, KindText, KindRaw, KindText, KindText}
	for i, c := range p.Children {
		if c.Kind != wantKinds[i] {
			t.Errorf("child %d kind = %v, want %v", i, c.Kind, wantKinds[i])
		}
		if c.Parent != p {
			t.Errorf("child %d parent not set", i)
		}
	}
	if p.Children[1].Value != "before " || p.Children[3].Value != " after" {
		t.Errorf("surrounding text = %q / %q", p.Children[1].Value, p.Children[3].Value)
	}
}

func TestTransform_KeepsPosition(t *testing.T) {
	t.Parallel()

	pos := &Position{Start: Point{Line: 3, Column: 1}, End: Point{Line: 3, Column: 10}}
	text := NewText("==x==")
	text.Position = pos
	p := paragraph(text)

	if err := New().Transform(NewRoot().Append(p)); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	for _, c := range p.Children {
		if c.Position != pos {
			t.Error("generated node lost the source position")
		}
	}
}

func TestTransform_NoMarkerIsNoOp(t *testing.T) {
	t.Parallel()

	text := NewText("nothing to see = here")
	p := paragraph(text)
	if err := New().Transform(NewRoot().Append(p)); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if len(p.Children) != 1 || p.Children[0] != text || text.Value != "nothing to see = here" {
		t.Error("text without markers must be left untouched")
	}
}

func TestTransform_SkipsCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tree func(leaf *Node) *Node
	}{
		{
			name: "literal block parent",
			tree: func(leaf *Node) *Node { return NewRoot().Append(NewNode(KindLiteralBlock, leaf)) },
		},
		{
			name: "literal inline parent",
			tree: func(leaf *Node) *Node {
				return NewRoot().Append(paragraph(NewNode(KindLiteralInline, leaf)))
			},
		},
		{
			name: "deeply nested under literal block",
			tree: func(leaf *Node) *Node {
				inner := paragraph(paragraph(paragraph(leaf)))
				return NewRoot().Append(NewNode(KindLiteralBlock, NewNode(KindOther, inner)))
			},
		},
		{
			name: "generic codeblock ancestor",
			tree: func(leaf *Node) *Node {
				return NewRoot().Append(NewNode(KindCodeBlock, paragraph(leaf)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			leaf := NewText("==literal==")
			root := tt.tree(leaf)
			if err := New().Transform(root); err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if leaf.Value != "==literal==" || leaf.Parent.indexOf(leaf) < 0 {
				t.Error("text inside code must be untouched")
			}
			if strings.Contains(PlainText(root), "<mark>") {
				t.Error("no highlight expected inside code")
			}
		})
	}
}

func TestTransform_CodeBlockAmongParagraphs(t *testing.T) {
	t.Parallel()

	code := NewNode(KindLiteralBlock, NewText("x ==literal== y"))
	root := NewRoot().Append(
		paragraph(NewText("==outside==")),
		code,
	)

	if err := New().Transform(root); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if code.Children[0].Value != "x ==literal== y" {
		t.Errorf("code text changed to %q", code.Children[0].Value)
	}
	if got := PlainText(root.Children[0]); got != "<mark>outside</mark>" {
		t.Errorf("paragraph = %q", got)
	}
}

func TestTransform_NodeFaultsAreIsolated(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// A text node that claims a parent which does not own it.
	orphanParent := paragraph()
	orphan := NewText("==orphan==")
	orphan.Parent = orphanParent

	good := NewText("==good==")
	p := paragraph(good)
	root := NewRoot().Append(p)
	root.Children = append(root.Children, orphan)

	if err := New(WithLogger(logger)).Transform(root); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if got := PlainText(p); got != "<mark>good</mark>" {
		t.Errorf("valid node not processed after a faulty one: %q", got)
	}
	if orphan.Value != "==orphan==" {
		t.Error("faulty node should be left as authored")
	}
	if !strings.Contains(buf.String(), "node skipped") {
		t.Errorf("expected fault to be logged, got %q", buf.String())
	}
}

func TestTransform_ParentCycle(t *testing.T) {
	t.Parallel()

	a := paragraph()
	b := paragraph()
	a.Parent = b
	b.Parent = a
	leaf := NewText("==x==")
	a.Append(leaf)

	root := NewRoot()
	root.Children = []*Node{a}

	if err := New().Transform(root); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if leaf.Value != "==x==" || len(a.Children) != 1 {
		t.Error("node with a cyclic parent chain should be skipped")
	}
}

func TestTransform_NilRoot(t *testing.T) {
	t.Parallel()

	if err := New().Transform(nil); err != nil {
		t.Errorf("Transform(nil) error = %v", err)
	}
}

func TestKindFromType(t *testing.T) {
	t.Parallel()

	tests := map[string]Kind{
		"root":       KindRoot,
		"text":       KindText,
		"code":       KindLiteralBlock,
		"inlineCode": KindLiteralInline,
		"codeblock":  KindCodeBlock,
		"html":       KindRaw,
		"paragraph":  KindElement,
		"footnote":   KindOther,
	}
	for name, want := range tests {
		if got := KindFromType(name); got != want {
			t.Errorf("KindFromType(%q) = %v, want %v", name, got, want)
		}
	}
}
