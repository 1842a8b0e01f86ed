package highlight

import "fmt"

// maxAncestorDepth bounds the parent walk so a corrupt parent chain cannot
// loop forever.
const maxAncestorDepth = 1 << 12

// Transform runs the highlight pass over the tree rooted at root, replacing
// text leaves in place. Faults on a single node are logged and skipped.
// A fault escaping the whole pass is recovered and returned wrapped in
// ErrTransform; the tree is then left partially transformed.
func (h *Highlighter) Transform(root *Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Debug("highlight: transform aborted", "panic", r)
			err = fmt.Errorf("%w: %v", ErrTransform, r)
		}
	}()

	if root == nil {
		return nil
	}

	// Collect first: replacing children while walking would revisit
	// the generated nodes.
	var texts []*Node
	Walk(root, func(n *Node) bool {
		if n.Kind == KindText {
			texts = append(texts, n)
		}
		return true
	})

	for _, n := range texts {
		if err := h.visit(n); err != nil {
			h.logger.Debug("highlight: node skipped", "error", err)
		}
	}
	return nil
}

// visit processes a single text node. Panics are converted to errors so
// one bad node never aborts the document.
func (h *Highlighter) visit(n *Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing text node: %v", r)
		}
	}()

	literal, err := underLiteral(n)
	if err != nil {
		return err
	}
	if literal {
		h.logger.Debug("highlight: text skipped", "reason", "inside code")
		return nil
	}

	frags, changed := h.Process(n.Value)
	if !changed {
		return nil
	}

	parent := n.Parent
	if parent == nil {
		return fmt.Errorf("%w: no parent", ErrDetachedNode)
	}
	i := parent.indexOf(n)
	if i < 0 {
		return ErrDetachedNode
	}

	parent.replaceChild(i, fragmentNodes(frags, n.Position))
	h.logger.Debug("highlight: node replaced", "fragments", len(frags))
	return nil
}

// underLiteral reports whether n sits at or below a code node.
func underLiteral(n *Node) (bool, error) {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.isLiteral() {
			return true, nil
		}
		depth++
		if depth > maxAncestorDepth {
			return false, ErrParentCycle
		}
	}
	return false, nil
}

// fragmentNodes converts fragments into sibling nodes. Generated nodes keep
// the position of the node they replace.
func fragmentNodes(frags []Fragment, pos *Position) []*Node {
	nodes := make([]*Node, 0, len(frags))
	for _, f := range frags {
		var n *Node
		if f.Kind == FragmentRaw {
			n = NewRaw(f.Value)
		} else {
			n = NewText(f.Value)
		}
		n.Position = pos
		nodes = append(nodes, n)
	}
	return nodes
}
