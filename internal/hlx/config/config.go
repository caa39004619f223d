// Package config loads hlx settings from hlx.toml or hlx.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names a config file that overrides discovery.
const EnvVar = "HLX_CONFIG"

// Filenames are tried in order in each directory Find visits.
var Filenames = []string{"hlx.toml", "hlx.yaml", "hlx.yml", ".hlx.yaml"}

var ErrUnknownFormat = errors.New("unknown config format")

// Config holds generator settings
type Config struct {
	Extension    string    `toml:"extension" yaml:"extension"`
	OutputSuffix string    `toml:"output_suffix" yaml:"output_suffix"`
	SkipDirs     []string  `toml:"skip_dirs" yaml:"skip_dirs"`
	MaxDepth     int       `toml:"max_depth" yaml:"max_depth"`
	Color        bool      `toml:"color" yaml:"color"`
	Log          LogConfig `toml:"log" yaml:"log"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	return &Config{
		Extension:    ".hlx",
		OutputSuffix: ".go",
		SkipDirs:     []string{"vendor", "node_modules", "testdata"},
		MaxDepth:     512,
		Color:        true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path on top of the defaults. The format follows the file
// extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension must start with a dot: %q", c.Extension)
	}
	if c.OutputSuffix == "" {
		return errors.New("output_suffix must not be empty")
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive: %d", c.MaxDepth)
	}
	return nil
}

// Find returns the config file that applies to dir: $HLX_CONFIG if set,
// otherwise the first known file name found walking up from dir to the
// module root (the first directory holding a go.mod). It returns "" when
// there is none.
func Find(dir string) (string, error) {
	if p := os.Getenv(EnvVar); p != "" {
		return p, nil
	}

	d, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range Filenames {
			p := filepath.Join(d, name)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, nil
			}
		}
		if _, err := os.Stat(filepath.Join(d, "go.mod")); err == nil {
			return "", nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", nil
		}
		d = parent
	}
}

// Resolve loads the file at path, or the one Find locates from dir when
// path is empty, falling back to Default.
func Resolve(path, dir string) (*Config, string, error) {
	if path == "" {
		var err error
		if path, err = Find(dir); err != nil {
			return nil, "", err
		}
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
