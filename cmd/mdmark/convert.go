package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdmark"
	"github.com/alnah/go-mdmark/internal/config"
	"github.com/alnah/go-mdmark/internal/fileutil"
	"github.com/alnah/go-mdmark/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrTooManyInputs    = errors.New("expected a single input")
	ErrReadMarkdown     = errors.New("failed to read markdown")
	ErrWriteHTML        = errors.New("failed to write HTML file")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
)

// stdinPath reads Markdown from standard input. As an output it means stdout.
const stdinPath = "-"

// stdinBaseName names the output file of a stdin conversion written to a directory.
const stdinBaseName = "stdin"

// filePermissions is rw-r--r--: owner read+write, others read.
const filePermissions = 0o644

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input mdmark.Input) (*mdmark.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*mdmark.Converter)(nil)

// execute runs one invocation with parsed flags.
func execute(ctx context.Context, flags *cliFlags, args []string, env *Environment) error {
	switch {
	case flags.help:
		printUsage(env.Stdout)
		return nil
	case flags.version:
		fmt.Fprintf(env.Stdout, "mdmark %s\n", Version)
		return nil
	case flags.listStyles:
		for _, name := range mdmark.StyleNames() {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(args)
	if err != nil {
		return err
	}

	markdown, err := readInput(inputPath, env.Stdin)
	if err != nil {
		return err
	}

	conv, err := mdmark.NewConverter(buildOptions(cfg, resolveTimeout(flags.timeout, envCfg))...)
	if err != nil {
		return withHint(err)
	}

	start := env.Now()
	result, err := conv.Convert(ctx, mdmark.Input{
		Markdown: markdown,
		Title:    cfg.Document.Title,
		BaseURL:  cfg.Document.BaseURL,
	})
	if err != nil {
		return withHint(fmt.Errorf("converting %s: %w", displayName(inputPath), err))
	}
	elapsed := env.Now().Sub(start)

	outputPath := resolveOutputPath(inputPath, resolveOutputDir(flags.output, cfg))
	if outputPath == "" {
		if _, err := env.Stdout.Write(result.HTML); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteHTML, err)
		}
	} else if err := fileutil.WriteFile(outputPath, result.HTML, filePermissions); err != nil {
		return withHint(fmt.Errorf("%w: %w", ErrWriteHTML, err))
	}

	// Stdout carries the document: report on stderr, and only when verbose
	status := env.Stdout
	if outputPath == "" {
		if !flags.common.verbose {
			return nil
		}
		status = env.Stderr
	}
	printResult(status, inputPath, outputPath, elapsed, flags.common)
	return nil
}

// loadConfig loads the config named by the flag, then MDMARK_CONFIG.
// Without either, defaults apply.
func loadConfig(flagConfig, envName string) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		err = fmt.Errorf("loading config: %w", err)
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.style.style != "" {
		cfg.CSS.Style = flags.style.style
	}
	if flags.style.disabled {
		cfg.CSS.Style = ""
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}

	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.baseURL != "" {
		cfg.Document.BaseURL = flags.document.baseURL
	}

	if flags.highlight.disabled {
		disabled := false
		cfg.Highlight.Enabled = &disabled
	}
	if flags.highlight.debug {
		cfg.Highlight.Debug = true
	}

	if flags.sanitize {
		cfg.Sanitize.Enabled = true
	}
}

// buildOptions maps the merged config to converter options.
func buildOptions(cfg *config.Config, timeout time.Duration) []mdmark.Option {
	opts := []mdmark.Option{
		mdmark.WithHighlight(cfg.Highlight.IsEnabled()),
		mdmark.WithDebug(cfg.Highlight.Debug),
		mdmark.WithSanitize(cfg.Sanitize.Enabled),
		mdmark.WithStyle(cfg.CSS.Style),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdmark.WithAssetPath(cfg.Assets.BasePath))
	}
	if timeout > 0 {
		opts = append(opts, mdmark.WithTimeout(timeout))
	}
	return opts
}

// resolveInputPath returns the single positional input.
func resolveInputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("%w%s", ErrNoInput, hints.ForNoInput())
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: got %d (%s)", ErrTooManyInputs, len(args), strings.Join(args, ", "))
	}
}

// readInput reads Markdown from a file, or from stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %w", ErrReadMarkdown, err)
		}
		return string(data), nil
	}

	if fileutil.IsURL(path) {
		return "", fmt.Errorf("%w: remote input is not supported: %s", ErrUsage, path)
	}
	if !fileutil.IsMarkdown(path) {
		return "", fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	return string(data), nil
}

// resolveOutputDir determines the output destination from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveOutputPath returns the file to write, or "" for stdout.
// An output ending in .html or .htm is used as is; any other output is a
// directory receiving <input name>.html.
func resolveOutputPath(inputPath, output string) string {
	if output == stdinPath {
		return ""
	}

	ext := strings.ToLower(filepath.Ext(output))
	if ext == ".html" || ext == ".htm" {
		return output
	}

	if inputPath == stdinPath {
		if output == "" {
			return ""
		}
		return filepath.Join(output, stdinBaseName+".html")
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}
	return filepath.Join(output, base+".html")
}

// withHint appends an actionable hint for known failures.
// The result still matches the original sentinels via errors.Is.
func withHint(err error) error {
	var hint string
	switch {
	case errors.Is(err, mdmark.ErrStyleNotFound):
		hint = hints.ForStyleNotFound(mdmark.StyleNames())
	case errors.Is(err, mdmark.ErrInvalidBaseURL):
		hint = hints.ForBaseURL()
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, ErrWriteHTML):
		hint = hints.ForOutputDirectory()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// printResult reports a finished conversion unless quiet.
func printResult(w io.Writer, inputPath, outputPath string, elapsed time.Duration, common commonFlags) {
	if common.quiet {
		return
	}

	dest := outputPath
	if dest == "" {
		dest = "stdout"
	}

	if common.verbose {
		fmt.Fprintf(w, "%s -> %s (%s)\n", displayName(inputPath), dest, elapsed.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(w, "%s -> %s\n", displayName(inputPath), dest)
}

// displayName names an input in messages.
func displayName(inputPath string) string {
	if inputPath == stdinPath {
		return "stdin"
	}
	return inputPath
}
