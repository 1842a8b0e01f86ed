package highlight

import "errors"

// Sentinel errors for tree transformation.
var (
	// ErrTransform wraps a fault recovered while running the whole pass.
	ErrTransform = errors.New("highlight transform failed")

	// ErrDetachedNode indicates a text node whose parent does not list it as a child.
	ErrDetachedNode = errors.New("text node is not attached to its parent")

	// ErrParentCycle indicates the parent chain of a node never reaches a root.
	ErrParentCycle = errors.New("parent chain does not terminate")
)
