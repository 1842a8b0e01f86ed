package mdmark

import (
	"errors"

	"github.com/alnah/go-mdmark/internal/highlight"
	"github.com/alnah/go-mdmark/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// ErrHTMLConversion indicates goldmark failed to render the document.
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// ErrInvalidBaseURL indicates Input.BaseURL is not an absolute
	// http, https or file URL.
	ErrInvalidBaseURL = pipeline.ErrInvalidBaseURL

	// ErrTransform indicates the highlight pass over a tree failed.
	// The tree is left in its best-effort state.
	ErrTransform = highlight.ErrTransform

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
