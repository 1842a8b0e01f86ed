package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing and argument errors.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds CSS styling flags.
type styleFlags struct {
	style     string
	assetPath string
	disabled  bool
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title   string
	baseURL string
}

// highlightFlags holds flags for the highlight pass.
type highlightFlags struct {
	disabled bool
	debug    bool
}

// cliFlags holds every flag the mdmark command accepts.
type cliFlags struct {
	common    commonFlags
	style     styleFlags
	document  documentFlags
	highlight highlightFlags
	output    string
	timeout   time.Duration // 0 = not set
	sanitize  bool

	listStyles bool
	version    bool
	help       bool
}

// addCommonFlags registers config and verbosity flags.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addStyleFlags registers styling flags.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "style name, CSS file path, or CSS content")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory holding styles/*.css overrides")
	fs.BoolVar(&f.disabled, "no-style", false, "disable CSS styling")
}

// addDocumentFlags registers document metadata flags.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first heading)")
	fs.StringVar(&f.baseURL, "base-url", "", "base for relative image and link URLs")
}

// addHighlightFlags registers highlight pass flags.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.disabled, "no-highlight", false, "leave ==text== untouched")
	fs.BoolVar(&f.debug, "debug", false, "trace highlight decisions to stderr")
}

// parseFlags parses command-line arguments (without the program name).
// Returns the flags and the remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mdmark", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	f := &cliFlags{}
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addDocumentFlags(fs, &f.document)
	addHighlightFlags(fs, &f.highlight)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.DurationVar(&f.timeout, "timeout", 0, "conversion timeout (e.g. 10s, 1m)")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize the rendered HTML")
	fs.BoolVar(&f.listStyles, "list-styles", false, "list embedded styles and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if f.timeout < 0 {
		return nil, nil, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, f.timeout)
	}

	return f, fs.Args(), nil
}
