// Package config loads service configuration from an optional YAML file
// layered over defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"error-console-api/internal/extension"
)

type Config struct {
	// Port the HTTP API listens on.
	Port int `yaml:"port"`

	// ChromeDebuggerURL is the CDP discovery endpoint.
	ChromeDebuggerURL string `yaml:"chrome_debugger_url"`

	// DataDir holds per-profile directories (prefs files).
	DataDir string `yaml:"data_dir"`

	// MaxTotalErrors caps stored entries per console, across all extensions.
	MaxTotalErrors int `yaml:"max_total_errors"`

	// CaptureTimeoutSeconds bounds a debugger attach window.
	CaptureTimeoutSeconds int `yaml:"capture_timeout_seconds"`

	// InternalFramePatterns classify stack-frame sources that belong to
	// internal shim code and are stripped from stored traces.
	InternalFramePatterns []string `yaml:"internal_frame_patterns"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:                  8000,
		ChromeDebuggerURL:     "http://localhost:9222/json",
		DataDir:               "data",
		MaxTotalErrors:        100,
		CaptureTimeoutSeconds: 30,
		InternalFramePatterns: append([]string(nil), extension.DefaultInternalFramePatterns...),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %v", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %v", err)
	}
	return cfg, nil
}
