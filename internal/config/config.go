package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mj1618/focus-cli/internal/model"
	"github.com/mj1618/focus-cli/internal/platform"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FOCUS_TOOLS_WMCTRL.
const EnvPrefix = "FOCUS"

// Config holds all application configuration.
type Config struct {
	// Backend is "tools" (wmctrl + xprop) or "xgb".
	Backend string `yaml:"backend" envconfig:"BACKEND"`

	// StackOrder tells which end of the recency stack is the most recent.
	StackOrder string `yaml:"stack_order" envconfig:"STACK_ORDER"`

	// Timeout bounds each external command; 0 disables it.
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`

	Tools ToolsConfig `yaml:"tools" envconfig:"TOOLS"`
	Log   LogConfig   `yaml:"log"   envconfig:"LOG"`
	Serve ServeConfig `yaml:"serve" envconfig:"SERVE"`
}

// ToolsConfig holds the helper binaries.
type ToolsConfig struct {
	Wmctrl string `yaml:"wmctrl" envconfig:"WMCTRL"`
	Xprop  string `yaml:"xprop"  envconfig:"XPROP"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
	File  string `yaml:"file"  envconfig:"FILE"`
}

// ServeConfig holds MCP server configuration.
type ServeConfig struct {
	Transport string `yaml:"transport" envconfig:"TRANSPORT"`
	Port      int    `yaml:"port"      envconfig:"PORT"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Backend:    string(platform.BackendTools),
		StackOrder: string(model.MostRecentLast),
		Timeout:    10 * time.Second,
		Tools: ToolsConfig{
			Wmctrl: "wmctrl",
			Xprop:  "xprop",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Serve: ServeConfig{
			Transport: "stdio",
			Port:      8080,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/focus-cli/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "focus-cli", "config.yaml"), nil
}

// Load builds the configuration from defaults, then the YAML file at path,
// then FOCUS_* environment variables. An empty path reads DefaultPath if it
// exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path, optional); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := platform.ParseBackend(c.Backend); err != nil {
		return err
	}
	if !model.StackOrder(c.StackOrder).Valid() {
		return fmt.Errorf("unknown stack order: %q (expected %s or %s)", c.StackOrder, model.MostRecentLast, model.MostRecentFirst)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.Tools.Wmctrl == "" || c.Tools.Xprop == "" {
		return fmt.Errorf("tool paths cannot be empty")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	switch c.Serve.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", c.Serve.Transport)
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve port must be between 1 and 65535, got %d", c.Serve.Port)
	}
	return nil
}

// PlatformOptions converts the configuration into provider options.
func (c *Config) PlatformOptions(log zerolog.Logger) platform.Options {
	backend, _ := platform.ParseBackend(c.Backend)
	return platform.Options{
		Backend: backend,
		Wmctrl:  c.Tools.Wmctrl,
		Xprop:   c.Tools.Xprop,
		Timeout: c.Timeout,
		Logger:  log,
	}
}
