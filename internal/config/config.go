// Package config loads server settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/f4ah6o/httpd10/internal/docroot"
)

// DefaultServerTag identifies the server on the second line of every response.
const DefaultServerTag = "httpd10/0.1"

// Config holds the server settings.
// The same field names are used for TOML and YAML files.
type Config struct {
	// Addr is the TCP address to listen on (e.g., "127.0.0.1:8080").
	Addr string `toml:"addr" yaml:"addr"`
	// Root is the document root. Empty means the working directory at startup.
	Root string `toml:"root" yaml:"root"`
	// LogFile is the path of the append-only access log.
	LogFile string `toml:"log_file" yaml:"log_file"`
	// ServerTag is echoed in every response.
	ServerTag string `toml:"server_tag" yaml:"server_tag"`
	// IndexFiles are probed in order when a request names a directory.
	IndexFiles []string `toml:"index_files" yaml:"index_files"`
	// MaxConns bounds concurrently handled connections (0 means unbounded).
	MaxConns int `toml:"max_conns" yaml:"max_conns"`
	// ReadTimeout is a Go duration bounding request reads (empty means none).
	ReadTimeout string `toml:"read_timeout" yaml:"read_timeout"`
	// NormalizePaths applies Unicode NFC normalization to request paths.
	NormalizePaths bool `toml:"normalize_paths" yaml:"normalize_paths"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:       "127.0.0.1:8080",
		LogFile:    "server.log",
		ServerTag:  DefaultServerTag,
		IndexFiles: append([]string(nil), docroot.DefaultIndexFiles...),
	}
}

// Load reads path over the defaults. The format is chosen by extension:
// ".toml", ".yaml" or ".yml".
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks fields that cannot be checked by decoding alone.
func (c Config) Validate() error {
	if _, err := c.ReadTimeoutDuration(); err != nil {
		return err
	}
	if c.MaxConns < 0 {
		return fmt.Errorf("max_conns must not be negative, got %d", c.MaxConns)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	return nil
}

// ReadTimeoutDuration parses ReadTimeout. An empty value is zero.
func (c Config) ReadTimeoutDuration() (time.Duration, error) {
	if c.ReadTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.ReadTimeout)
	if err != nil {
		return 0, fmt.Errorf("read_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("read_timeout must not be negative, got %s", d)
	}
	return d, nil
}

// ResolveRoot returns Root as an absolute path, defaulting to the working directory.
func (c Config) ResolveRoot() (string, error) {
	if c.Root == "" {
		return os.Getwd()
	}
	return filepath.Abs(c.Root)
}
