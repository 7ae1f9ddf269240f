// Package config holds the analyzer's run configuration and logging.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid reports a configuration value out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config is the run configuration. It is loaded from an optional YAML file
// and then overridden by command-line flags.
type Config struct {
	// Objdump is the disassembler executable. Empty selects the default
	// cross objdump for the binary's word size.
	Objdump string `yaml:"objdump"`

	// EdgesFile lists "caller:callee" pairs, one per line.
	EdgesFile string `yaml:"edges-file"`

	// FunctionsFile lists functions, one per line, that restrict the DOT
	// rendering to the paths reaching them.
	FunctionsFile string `yaml:"functions-file"`

	// Edges are inline "caller:callee" pairs, applied after EdgesFile.
	Edges []string `yaml:"edges"`

	// Functions are inline allow-list entries, merged with FunctionsFile.
	Functions []string `yaml:"functions"`

	// Arch is the word size in bits (32 or 64) used when analyzing a saved
	// listing without its ELF file. 0 means unknown.
	Arch int `yaml:"arch"`

	// LogLevel controls verbosity, from 1 (errors) to 5 (trace).
	LogLevel int `yaml:"log-level"`

	sourceFile string
}

// NewDefault returns a config with default values.
func NewDefault() *Config {
	return &Config{LogLevel: int(InfoLevel)}
}

// Load reads a YAML configuration file. Relative file paths in it are
// resolved against the file's directory.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file %s: %w", filename, err)
	}
	cfg.sourceFile = filename

	dir := filepath.Dir(filename)
	cfg.EdgesFile = relativeTo(dir, cfg.EdgesFile)
	cfg.FunctionsFile = relativeTo(dir, cfg.FunctionsFile)

	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.LogLevel < int(ErrLevel) || c.LogLevel > int(TraceLevel) {
		return fmt.Errorf("%w: log-level %d", ErrInvalid, c.LogLevel)
	}
	if c.Arch != 0 && c.Arch != 32 && c.Arch != 64 {
		return fmt.Errorf("%w: arch %d", ErrInvalid, c.Arch)
	}
	return nil
}

// SourceFile returns the file the config was loaded from, or "".
func (c *Config) SourceFile() string { return c.sourceFile }

// AllowList returns FunctionsFile's entries followed by Functions.
func (c *Config) AllowList() ([]string, error) {
	var names []string
	if c.FunctionsFile != "" {
		lines, err := ReadLines(c.FunctionsFile)
		if err != nil {
			return nil, err
		}
		names = append(names, lines...)
	}
	return append(names, c.Functions...), nil
}

// ReadLines returns the trimmed non-empty lines of a file.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			lines = append(lines, s)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

func relativeTo(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
