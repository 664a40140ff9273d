// Package config loads the project file (patc.toml, patc.yaml or patc.yml)
// found by walking up from a start directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"patc/internal/format"
)

// Names searched in every directory, in priority order.
var FileNames = []string{"patc.toml", "patc.yaml", "patc.yml"}

const DefaultMaxDiagnostics = 100

var (
	// ErrUnknownKeys is wrapped when a file has keys the schema does not know.
	ErrUnknownKeys = errors.New("unknown configuration keys")
	// ErrInvalid is wrapped by every validation error.
	ErrInvalid = errors.New("invalid configuration")
)

// Config is the project configuration.
type Config struct {
	// Path of the loaded file; empty for defaults.
	Path       string            `toml:"-" yaml:"-"`
	Render     Render            `toml:"render" yaml:"render"`
	Converters map[string]string `toml:"converters" yaml:"converters"`
	Patterns   map[string]string `toml:"patterns" yaml:"patterns"`
}

type Render struct {
	Width          string `toml:"width" yaml:"width"`
	MaxDiagnostics int    `toml:"max_diagnostics" yaml:"max_diagnostics"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Render: Render{
			Width:          format.Runes.String(),
			MaxDiagnostics: DefaultMaxDiagnostics,
		},
		Converters: map[string]string{},
		Patterns:   map[string]string{},
	}
}

// Find walks up from startDir and returns the first project file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the project file starting at startDir. Without a
// file it returns Default() and false.
func Discover(startDir string) (*Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Load reads a configuration file; the format is chosen by extension.
func Load(path string) (*Config, error) {
	// #nosec G304 -- path comes from the user or from Find
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = decodeTOML(data)
	case ".yaml", ".yml":
		cfg, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%s: unsupported config format (expected .toml, .yaml or .yml)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func decodeTOML(data []byte) (*Config, error) {
	cfg := Default()
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}
	if meta.IsDefined("render", "width") && strings.TrimSpace(cfg.Render.Width) == "" {
		return nil, fmt.Errorf("%w: [render].width is empty", ErrInvalid)
	}
	return cfg, nil
}

func decodeYAML(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		if strings.Contains(err.Error(), "not found in type") {
			return nil, fmt.Errorf("%w: %v", ErrUnknownKeys, err)
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// Validate checks values that the decoders cannot.
func (c *Config) Validate() error {
	if _, err := format.ParseMeasure(c.Render.Width); err != nil {
		return fmt.Errorf("%w: [render].width: %v", ErrInvalid, err)
	}
	if c.Render.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: [render].max_diagnostics must be >= 0", ErrInvalid)
	}
	for word := range c.Converters {
		if !isWord(word) {
			return fmt.Errorf("%w: [converters]: %q is not a valid conversion word", ErrInvalid, word)
		}
	}
	for name := range c.Patterns {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: [patterns]: empty pattern name", ErrInvalid)
		}
	}
	return nil
}

// Measure returns the parsed [render].width.
func (c *Config) Measure() format.Measure {
	m, err := format.ParseMeasure(c.Render.Width)
	if err != nil {
		return format.Runes
	}
	return m
}

// PatternNames returns the names of [patterns] in sorted order.
func (c *Config) PatternNames() []string {
	names := make([]string, 0, len(c.Patterns))
	for name := range c.Patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isWord: то же, что лексер принимает как ключевое слово.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return false
		}
		for i, r := range seg {
			if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
				continue
			}
			return false
		}
	}
	return true
}
