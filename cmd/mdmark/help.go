package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdmark <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown file to a standalone HTML page, rendering ==text== as <mark>.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file (.md, .markdown), or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file, directory, or - for stdout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --timeout <d>         Conversion timeout (e.g. 10s, 1m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = first heading)")
	fmt.Fprintln(w, "      --base-url <url>      Base for relative image and link URLs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --no-highlight        Leave ==text== untouched")
	fmt.Fprintln(w, "      --debug               Trace highlight decisions to stderr")
	fmt.Fprintln(w, "      --sanitize            Sanitize the rendered HTML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file path, or CSS content")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory holding styles/*.css overrides")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w, "      --list-styles         List embedded styles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDMARK_CONFIG, MDMARK_STYLE, MDMARK_TIMEOUT, MDMARK_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MDMARK_BASE_URL, MDMARK_ASSET_PATH, MDMARK_DEBUG")
	fmt.Fprintln(w, "  A .env file in the working directory is loaded when present.")
}
