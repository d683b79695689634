package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/vk/modreg/internal/jsunit"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPaths []string // .hcl, .yaml or .yml files, or directories of them
	Entries       []string // override the manifests' entries when set
	Query         string   // gjson path applied to the rendered output
	GlobalName    string
	List          bool

	LogFormat   string
	LogLevel    string
	LogOutput   io.Writer // defaults to the App's output writer
	MetricsPort int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ManifestPaths) == 0 {
		return nil, errors.New("at least one manifest path is required")
	}
	if cfg.GlobalName == "" {
		cfg.GlobalName = jsunit.DefaultGlobalName
	}
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json", "auto":
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return nil, fmt.Errorf("invalid metrics port %d", cfg.MetricsPort)
	}
	return &cfg, nil
}
