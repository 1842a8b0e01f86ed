package mdmark

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alnah/go-mdmark/internal/assets"
	"github.com/alnah/go-mdmark/internal/fileutil"
	"github.com/alnah/go-mdmark/internal/highlight"
	"github.com/alnah/go-mdmark/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.HTMLSanitizer        = (*pipeline.PolicySanitizer)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ assets.AssetLoader            = (*publicToInternalAdapter)(nil)
)

// Converter orchestrates the Markdown to HTML pipeline.
// Create with NewConverter() and use Convert() for conversion.
// A Converter holds no per-document state and is safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	logger            *slog.Logger
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader // from WithAssetLoader
	preprocessor      pipeline.MarkdownPreprocessor
	htmlConverter     pipeline.HTMLConverter
	sanitizer         pipeline.HTMLSanitizer // nil = no sanitization
	cssInjector       pipeline.CSSInjector
}

// NewConverter creates a Converter with default configuration: highlighting
// on, no style, no sanitization.
// Returns error if the asset path or style cannot be resolved.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{timeout: defaultTimeout, highlight: true},
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		if c.cfg.debug {
			c.logger = newDebugLogger()
		} else {
			c.logger = DebugLogger()
		}
	}

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	// Components not injected by tests
	if c.htmlConverter == nil {
		var h *highlight.Highlighter
		if c.cfg.highlight {
			h = highlight.New(highlight.WithLogger(c.logger))
		}
		c.htmlConverter = pipeline.NewGoldmarkConverter(h)
	}
	if c.sanitizer == nil && c.cfg.sanitize {
		c.sanitizer = pipeline.NewPolicySanitizer()
	}

	return c, nil
}

// Convert runs the full pipeline and returns the standalone HTML document.
// The context is used for cancellation; the converter timeout applies on top.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	body, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Sanitize before rewriting: the base URL is trusted, authored URLs are not
	if c.sanitizer != nil {
		body = c.sanitizer.Sanitize(ctx, body)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	if input.BaseURL != "" {
		body, err = pipeline.RewriteRelativeURLs(body, input.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative URLs: %w", err)
		}
	}

	title := input.Title
	if title == "" {
		title = pipeline.ExtractTitle(body)
	}
	if title == "" {
		title = pipeline.DefaultTitle
	}

	// Converter style first (base), user CSS last (can override)
	cssContent := c.cfg.resolvedStyle
	if input.CSS != "" {
		if cssContent != "" {
			cssContent += "\n"
		}
		cssContent += input.CSS
	}

	document := c.cssInjector.InjectCSS(ctx, pipeline.WrapDocument(title, body), cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return &Result{
		HTML:  []byte(document),
		Body:  body,
		Title: title,
	}, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewConverter() after options are applied and asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use asset loader
	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their config validated earlier by Config.Validate().
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if input.BaseURL != "" {
		if _, err := pipeline.ParseBaseURL(input.BaseURL); err != nil {
			return err
		}
	}
	return nil
}
