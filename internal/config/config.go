package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed configs/default.yaml
var configFS embed.FS

// DefaultFile is looked up in the working directory when no config path is given
const DefaultFile = ".lineclass.yaml"

// StatsMode selects how much statistics to print
type StatsMode string

const (
	StatsNone  StatsMode = "none"
	StatsShort StatsMode = "short"
	StatsFull  StatsMode = "full"
)

// Config holds run defaults. Command-line flags override these values.
type Config struct {
	// OutputDir is where result files are written
	OutputDir string `yaml:"output_dir"`

	// Prefix is prepended to every result file name
	Prefix string `yaml:"prefix"`

	// Append keeps existing output file content
	Append bool `yaml:"append"`

	Stats    StatsMode `yaml:"stats"`
	Format   string    `yaml:"format"`
	LogLevel string    `yaml:"log_level"`

	Sink SinkConfig `yaml:"sink"`
}

// SinkConfig tunes output file creation
type SinkConfig struct {
	PermFile os.FileMode `yaml:"perm_file"`
	PermDir  os.FileMode `yaml:"perm_dir"`
	BufSize  int         `yaml:"buf_size"`
}

// Default returns the built-in configuration
func Default() (*Config, error) {
	data, err := configFS.ReadFile("configs/default.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read builtin config: %w", err)
	}
	cfg := &Config{}
	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid builtin config: %w", err)
	}
	return cfg, nil
}

// Load returns the built-in configuration overlaid with the YAML file at path.
// An empty path tries DefaultFile and silently skips it when absent.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks enumerated fields
func (c *Config) Validate() error {
	switch c.Stats {
	case StatsNone, StatsShort, StatsFull:
	default:
		return fmt.Errorf("unknown stats mode: %q", c.Stats)
	}
	switch c.Format {
	case "terminal", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %q", c.Format)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}
	return nil
}
