// Package pipeline implements the Markdown-to-HTML rendering pipeline.
//
// This package handles every stage between authored Markdown and the final
// HTML document:
//   - Markdown preprocessing (line normalization, blank line compression)
//   - Markdown to HTML conversion via Goldmark, including the ==highlight==
//     pass registered as an AST transformer
//   - optional sanitization of the rendered body with bluemonday
//   - relative URL rewriting against a base URL
//   - document wrapping and CSS injection
//
// The highlight pass itself lives in internal/highlight and knows nothing
// about Goldmark; HighlightExtension adapts it to Goldmark's AST.
package pipeline
