package mdmark

import (
	"log/slog"
	"time"
)

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)
	CSS      string // Custom CSS appended after the converter style (optional)
	Title    string // Document <title> (optional, empty = first heading, then "Document")
	BaseURL  string // Base for relative image and link URLs (optional)
}

// Result holds the output of a conversion.
type Result struct {
	HTML  []byte // Standalone HTML5 document
	Body  string // Rendered body fragment, before wrapping and CSS injection
	Title string // Title used for the document
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string // name, file path, or CSS content
	resolvedStyle string // CSS content after resolution
	assetPath     string
	highlight     bool
	sanitize      bool
	debug         bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdmark: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the CSS style for conversions.
// Accepts a style name ("default", "minimal"), a file path
// ("./custom.css"), or CSS content ("body { ... }").
// Empty means no converter style.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory whose styles/ subdirectory overrides the
// embedded styles. Missing styles fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom loader for named styles.
// Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithHighlight enables or disables the ==highlight== pass. Enabled by default.
func WithHighlight(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.highlight = enabled
	}
}

// WithSanitize enables a bluemonday pass over the rendered body.
// Use it when the Markdown source is not trusted.
func WithSanitize(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.sanitize = enabled
	}
}

// WithLogger sets the logger used for debug tracing of the highlight pass.
// Overrides WithDebug and MDMARK_DEBUG.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithDebug traces highlight decisions to stderr at debug level.
// Ignored when WithLogger is set.
func WithDebug(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.debug = enabled
	}
}
