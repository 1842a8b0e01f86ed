package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-mdmark"
	"github.com/alnah/go-mdmark/internal/config"
	"github.com/alnah/go-mdmark/internal/fileutil"
)

// envPrefix marks the variables read by mdmark.
const envPrefix = "MDMARK_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDMARK_CONFIG: config file name or path
	Style      string        // MDMARK_STYLE: CSS style name or path
	Timeout    time.Duration // MDMARK_TIMEOUT: conversion timeout
	OutputDir  string        // MDMARK_OUTPUT_DIR: default output directory
	BaseURL    string        // MDMARK_BASE_URL: base for relative URLs
	AssetPath  string        // MDMARK_ASSET_PATH: custom styles directory
}

// knownEnvVars lists valid MDMARK_* environment variables.
// MDMARK_DEBUG is read by the library itself.
var knownEnvVars = map[string]bool{
	"MDMARK_CONFIG":     true,
	"MDMARK_STYLE":      true,
	"MDMARK_TIMEOUT":    true,
	"MDMARK_OUTPUT_DIR": true,
	"MDMARK_BASE_URL":   true,
	"MDMARK_ASSET_PATH": true,
	mdmark.DebugEnvVar:  true,
}

// loadEnvConfig reads configuration from environment variables.
// An invalid or non-positive MDMARK_TIMEOUT is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDMARK_CONFIG"),
		Style:      os.Getenv("MDMARK_STYLE"),
		OutputDir:  os.Getenv("MDMARK_OUTPUT_DIR"),
		BaseURL:    os.Getenv("MDMARK_BASE_URL"),
		AssetPath:  os.Getenv("MDMARK_ASSET_PATH"),
	}

	if timeout := os.Getenv("MDMARK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MDMARK_* variable.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.CSS.Style == "" {
		cfg.CSS.Style = env.Style
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.BaseURL != "" && cfg.Document.BaseURL == "" {
		cfg.Document.BaseURL = env.BaseURL
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}

// resolveTimeout picks the conversion timeout: flag, then env.
// Zero means the library default.
func resolveTimeout(flagTimeout time.Duration, env *envConfig) time.Duration {
	if flagTimeout > 0 {
		return flagTimeout
	}
	return env.Timeout
}

// loadDotEnv loads variables from a .env file when present.
// Variables already set in the environment win over the file.
func loadDotEnv(path string) error {
	if !fileutil.FileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
