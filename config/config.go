// Package config handles tally.toml session configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents a tally.toml file. Every field has a default, so a
// missing file yields a usable configuration.
type Config struct {
	Repl Repl `toml:"repl"`
	VM   VM   `toml:"vm"`

	// Dir is the directory the tally.toml was loaded from (set at load
	// time, empty for defaults).
	Dir string `toml:"-"`
}

// Repl configures the interactive loop's presentation.
type Repl struct {
	Prompt         string `toml:"prompt"`
	ContinuePrompt string `toml:"continue-prompt"`
	Welcome        string `toml:"welcome"`
}

// VM configures execution.
type VM struct {
	Trace bool `toml:"trace"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Repl: Repl{
			Prompt:         ">> ",
			ContinuePrompt: ".. ",
			Welcome:        "tally (type 'exit' to quit, 'clear' to drop pending input)",
		},
	}
}

// Load parses a tally.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, "tally.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	c.Dir = dir
	return c, nil
}

// FindAndLoad looks for a tally.toml in the given directory and falls
// back to the defaults when there is none.
func FindAndLoad(dir string) (*Config, error) {
	path := filepath.Join(dir, "tally.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(dir)
}
