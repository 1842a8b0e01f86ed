// Package highlight implements the ==highlight== pass over a parsed document tree.
//
// The pass runs four stages on every eligible text leaf:
//   - tree walking, which skips anything at or under a code node
//   - span detection and validation of ==...== markers
//   - a restricted inline renderer (bold, italic, code, links)
//   - a secure escaper that keeps only the tags it generated live
//
// Leaves containing at least one valid span are replaced in their parent by
// a sequence of text and raw-markup siblings. Everything else is left as
// authored. The package never parses Markdown itself; adapters for concrete
// parsers (see internal/pipeline for goldmark) call Highlighter.Process on
// the raw text of each leaf.
package highlight
