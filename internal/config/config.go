package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdmark/internal/fileutil"
	"github.com/alnah/go-mdmark/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxStyleLength = 256  // Style name or stylesheet path
	MaxPathLength  = 4096 // PATH_MAX on Linux
	MaxTitleLength = 200  // Document title
	MaxURLLength   = 2048 // Browser limit
)

// userConfigDirName is the directory under os.UserConfigDir() searched for
// named configs.
const userConfigDirName = "go-mdmark"

// Config holds all configuration for HTML generation.
type Config struct {
	Highlight HighlightConfig `yaml:"highlight"`
	CSS       CSSConfig       `yaml:"css"`
	Sanitize  SanitizeConfig  `yaml:"sanitize"`
	Output    OutputConfig    `yaml:"output"`
	Document  DocumentConfig  `yaml:"document"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// HighlightConfig defines the ==highlight== pass.
type HighlightConfig struct {
	Enabled *bool `yaml:"enabled"` // nil = enabled
	Debug   bool  `yaml:"debug"`   // Trace detection decisions to stderr
}

// IsEnabled reports whether the highlight pass runs. Defaults to true.
func (h HighlightConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Embedded style name or stylesheet path (empty = no CSS)
}

// SanitizeConfig defines the post-render HTML sanitizer.
type SanitizeConfig struct {
	Enabled bool `yaml:"enabled"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// DocumentConfig defines document-level metadata.
type DocumentConfig struct {
	Title   string `yaml:"title"`   // <title> (empty = first heading, then "Document")
	BaseURL string `yaml:"baseURL"` // Base for relative image and link URLs
}

// AssetsConfig defines where custom styles are loaded from.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Directory holding styles/*.css (empty = embedded only)
}

// Validate checks field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		limit int
	}{
		{"css.style", c.CSS.Style, MaxStyleLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.baseURL", c.Document.BaseURL, MaxURLLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}

	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.limit); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with highlighting on and every
// optional pass off.
func DefaultConfig() *Config {
	return &Config{
		Highlight: HighlightConfig{Enabled: nil, Debug: false},
		CSS:       CSSConfig{Style: ""},
		Sanitize:  SanitizeConfig{Enabled: false},
		Output:    OutputConfig{DefaultDir: ""},
		Document:  DocumentConfig{Title: "", BaseURL: ""},
		Assets:    AssetsConfig{BasePath: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var cfg Config
	if err := yamlutil.DecodeStrict(f, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order:
// ./name.yaml, ./name.yml, then the same names under the user config
// directory (e.g. ~/.config/go-mdmark/).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing path from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
