// Package config provides configuration management for mcml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

// Output formats accepted in the config file and by --output.
var outputFormats = []string{"ansi", "json", "plain", "legacy", "irc", "table"}

// Config holds the mcml configuration.
type Config struct {
	ColorChar         string            `yaml:"color_char,omitempty"`
	PlaceholderOffset *int              `yaml:"placeholder_offset,omitempty"`
	OutputFormat      string            `yaml:"output_format,omitempty"`
	Endpoint          string            `yaml:"endpoint,omitempty"`
	Token             string            `yaml:"token,omitempty"`
	Templates         map[string]string `yaml:"templates,omitempty"`
}

// Validate checks the configured values.
func (c *Config) Validate() error {
	if c.ColorChar != "" {
		r, size := utf8.DecodeRuneInString(c.ColorChar)
		if size != len(c.ColorChar) {
			return errors.New("color_char must be a single character")
		}
		if unicode.IsSpace(r) || strings.ContainsRune(`\[]()"`, r) {
			return fmt.Errorf("color_char %q is reserved by the markup", r)
		}
	}

	if c.PlaceholderOffset != nil && *c.PlaceholderOffset < 0 {
		return errors.New("placeholder_offset must not be negative")
	}

	if c.OutputFormat != "" && !isOutputFormat(c.OutputFormat) {
		return fmt.Errorf("output_format must be one of: %s", strings.Join(outputFormats, ", "))
	}

	// Validate URL scheme
	if c.Endpoint != "" && !strings.HasPrefix(c.Endpoint, "https://") && !strings.HasPrefix(c.Endpoint, "http://") {
		return errors.New("endpoint must use http or https")
	}

	return nil
}

func isOutputFormat(f string) bool {
	for _, v := range outputFormats {
		if v == f {
			return true
		}
	}
	return false
}

// OutputFormats returns the accepted output format names.
func OutputFormats() []string {
	return append([]string(nil), outputFormats...)
}

// ColorRune returns the configured color trigger, or the default.
func (c *Config) ColorRune() rune {
	if c.ColorChar == "" {
		return mcml.DefaultColorChar
	}
	r, _ := utf8.DecodeRuneInString(c.ColorChar)
	return r
}

// Offset returns the configured placeholder offset, or the default.
func (c *Config) Offset() int {
	if c.PlaceholderOffset == nil {
		return mcml.DefaultPlaceholderOffset
	}
	return *c.PlaceholderOffset
}

// NormalizeEndpoint strips trailing slashes from the endpoint.
func (c *Config) NormalizeEndpoint() {
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("MCML_COLOR_CHAR"); v != "" {
		c.ColorChar = v
	}
	if v := os.Getenv("MCML_PLACEHOLDER_OFFSET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PlaceholderOffset = &n
		}
	}
	if v := os.Getenv("MCML_OUTPUT"); v != "" {
		c.OutputFormat = v
	}
	if v := os.Getenv("MCML_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("MCML_TOKEN"); v != "" {
		c.Token = v
	}
}

// EnvVars lists the environment variables LoadFromEnv reads.
func EnvVars() []string {
	return []string{"MCML_COLOR_CHAR", "MCML_PLACEHOLDER_OFFSET", "MCML_OUTPUT", "MCML_ENDPOINT", "MCML_TOKEN"}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mcml", "config.yml")
	}

	// Fall back to ~/.config/mcml/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mcml", "config.yml")
	}

	return filepath.Join(home, ".config", "mcml", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The token is a credential: user read/write only
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil
		}
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		// If file doesn't exist, start with empty config
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
