// Package mdmark converts Markdown documents to standalone HTML with
// ==highlight== support.
//
// # Quick Start
//
// Create a converter once and reuse it; it is safe for concurrent use:
//
//	conv, err := mdmark.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, mdmark.Input{
//	    Markdown: "# Hello\n\nThis is ==important==.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.html", result.HTML, 0644)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line ending normalization, blank line compression)
//  2. Markdown to HTML conversion via Goldmark (GFM, footnotes, syntax
//     highlighting, heading IDs) with the ==highlight== pass on the parsed tree
//  3. Optional sanitization of the rendered body (bluemonday)
//  4. Relative URL rewriting against Input.BaseURL
//  5. Wrapping in an HTML5 document and CSS injection
//
// # Highlight Syntax
//
// Text wrapped in double equals signs is rendered as a <mark> element.
// Inside a mark, **bold**, *italic*, `code` and [links](url) are rendered.
// Spans are never recognized inside code, and a text containing a run of
// three or more equals signs is left untouched.
//
// The highlight pass is also available on its own, for host pipelines:
//
//	md := goldmark.New(goldmark.WithExtensions(mdmark.Extension()))
//
// or over a generic tree:
//
//	err := mdmark.Transform(root)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := mdmark.NewConverter(
//	    mdmark.WithStyle("minimal"),
//	    mdmark.WithSanitize(true),
//	    mdmark.WithTimeout(5 * time.Second),
//	)
//
// Set MDMARK_DEBUG=true to trace highlight decisions to stderr.
package mdmark
