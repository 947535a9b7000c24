// Package config loads goliquid settings from HCL or YAML files.
package config

import (
	"bytes"
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file the CLI looks for in the working
// directory when --config is not given.
const DefaultFileName = ".goliquid.hcl"

// Config is the root of a goliquid configuration file.
type Config struct {
	// Log settings for the CLI logger
	Log *LogConfig `json:"log,omitempty" hcl:"log,block" yaml:"log,omitempty"`
	// Check settings for template diagnostics
	Check *CheckConfig `json:"check,omitempty" hcl:"check,block" yaml:"check,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level,omitempty" hcl:"level,optional" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" hcl:"format,optional" yaml:"format,omitempty"`
}

type CheckConfig struct {
	// Include lists the glob patterns used to find template files
	Include []string `json:"include,omitempty" hcl:"include,optional" yaml:"include,omitempty"`
	// MaxExpressionDepth overrides the parser nesting limit when positive
	MaxExpressionDepth int `json:"max_expression_depth,omitempty" hcl:"max_expression_depth,optional" yaml:"max_expression_depth,omitempty"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Log: &LogConfig{
			Level:  "info",
			Format: "text",
		},
		Check: &CheckConfig{
			Include: []string{"**/*.liquid"},
		},
	}
}

// Load reads a config file from fs. Files ending in .yaml or .yml are
// parsed as YAML, everything else as HCL. Blocks the file leaves out are
// filled in from DefaultConfig.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var cfg Config
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
		return cfg.withDefaults(), nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return cfg.withDefaults(), nil
}

// LoadOrDefault loads path when given. With an empty path it loads
// DefaultFileName if present and falls back to DefaultConfig otherwise.
func LoadOrDefault(fs afero.Fs, path string) (*Config, error) {
	if path != "" {
		return Load(fs, path)
	}
	ok, err := afero.Exists(fs, DefaultFileName)
	if err != nil || !ok {
		return DefaultConfig(), nil
	}
	return Load(fs, DefaultFileName)
}

type contextKey struct{}

// WithContext returns a child context carrying cfg.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the config stored by WithContext, or DefaultConfig
// when the context carries none.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok {
		return cfg
	}
	return DefaultConfig()
}

func (cfg Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if cfg.Log == nil {
		cfg.Log = defaults.Log
	} else {
		if cfg.Log.Level == "" {
			cfg.Log.Level = defaults.Log.Level
		}
		if cfg.Log.Format == "" {
			cfg.Log.Format = defaults.Log.Format
		}
	}
	if cfg.Check == nil {
		cfg.Check = defaults.Check
	} else if len(cfg.Check.Include) == 0 {
		cfg.Check.Include = defaults.Check.Include
	}
	return &cfg
}
