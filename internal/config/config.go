// Package config loads the tool configuration from JSON, merging partial
// files over built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sculpt/internal/ast"
)

type Config struct {
	Root           string   `json:"root"`
	FileExtensions []string `json:"file_extensions"`
	JournalPath    string   `json:"journal_path"`
	Indent         string   `json:"indent"`
	NewLine        string   `json:"newline"`
}

var defaultConfig = Config{
	Root:           ".",
	FileExtensions: []string{".ts"},
	JournalPath:    "",
	Indent:         "  ",
	NewLine:        "\n",
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig
}

// LoadFromJSON reads JSON from r over the defaults; only fields present
// in the stream overwrite.
func LoadFromJSON(r io.Reader) (Config, error) {
	cfg := defaultConfig

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// LoadFile reads the config file at path. An empty path yields the
// defaults; a path that names no file is an error.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return defaultConfig, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return LoadFromJSON(f)
}

// Format returns the session format settings the config describes.
func (c Config) Format() ast.Format {
	return ast.Format{Indent: c.Indent, NewLine: c.NewLine}
}
