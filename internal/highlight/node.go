package highlight

// Kind classifies document nodes. Only the kinds the walker acts on are
// distinguished; everything else is KindOther and keeps its host type name.
type Kind int

const (
	KindOther Kind = iota
	KindRoot
	KindElement
	KindText
	KindRaw
	KindLiteralBlock
	KindLiteralInline
	KindCodeBlock
)

var kindNames = map[Kind]string{
	KindOther:         "other",
	KindRoot:          "root",
	KindElement:       "element",
	KindText:          "text",
	KindRaw:           "raw",
	KindLiteralBlock:  "literalBlock",
	KindLiteralInline: "literalInline",
	KindCodeBlock:     "codeblock",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindFromType maps a host parser's node type name to a Kind.
// Unknown names map to KindOther.
func KindFromType(name string) Kind {
	switch name {
	case "root":
		return KindRoot
	case "element", "paragraph", "heading", "emphasis", "strong", "link", "listItem", "list", "blockquote":
		return KindElement
	case "text":
		return KindText
	case "html", "raw":
		return KindRaw
	case "code":
		return KindLiteralBlock
	case "inlineCode":
		return KindLiteralInline
	case "codeblock":
		return KindCodeBlock
	}
	return KindOther
}

// Point is a location in the source document.
type Point struct {
	Line   int
	Column int
	Offset int
}

// Position spans two points in the source document.
type Position struct {
	Start Point
	End   Point
}

// Node is a document tree node.
//
// Children are owned by their parent. Parent is a back-reference used only
// for ancestor lookups; the walker never changes ownership through it.
type Node struct {
	Kind     Kind
	Type     string // host type name, informational
	Value    string // text and raw content
	Children []*Node
	Parent   *Node
	Position *Position
}

// NewRoot returns an empty root node.
func NewRoot() *Node {
	return &Node{Kind: KindRoot, Type: "root"}
}

// NewText returns a text leaf.
func NewText(value string) *Node {
	return &Node{Kind: KindText, Type: "text", Value: value}
}

// NewRaw returns a raw-markup leaf whose value is emitted as-is.
func NewRaw(value string) *Node {
	return &Node{Kind: KindRaw, Type: "html", Value: value}
}

// NewNode returns a container node of the given kind.
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind, Type: kind.String()}
	n.Append(children...)
	return n
}

// Append adds children to n and sets their parent.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// isLiteral reports whether highlight syntax must be ignored under n.
func (n *Node) isLiteral() bool {
	switch n.Kind {
	case KindLiteralBlock, KindLiteralInline, KindCodeBlock:
		return true
	}
	return false
}

// indexOf returns the position of child in n.Children, or -1.
func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// replaceChild swaps the child at index i for the given nodes.
func (n *Node) replaceChild(i int, with []*Node) {
	for _, c := range with {
		c.Parent = n
	}
	out := make([]*Node, 0, len(n.Children)-1+len(with))
	out = append(out, n.Children[:i]...)
	out = append(out, with...)
	out = append(out, n.Children[i+1:]...)
	n.Children = out
}

// Walk calls fn for n and each descendant in document order.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// PlainText concatenates the values of all text and raw leaves under n.
func PlainText(n *Node) string {
	var out []byte
	Walk(n, func(c *Node) bool {
		if c.Kind == KindText || c.Kind == KindRaw {
			out = append(out, c.Value...)
		}
		return true
	})
	return string(out)
}
