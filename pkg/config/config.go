// Package config loads optional output preferences from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Output controls how listings are rendered.
type Output struct {
	Color      bool `yaml:"color"`
	BytesWidth int  `yaml:"bytes_width"` // hex bytes shown per listing line
	HexWidth   int  `yaml:"hex_width"`   // bytes per hexdump row
	Workers    int  `yaml:"workers"`     // sweep workers, 0 = NumCPU
}

// Default returns the built-in preferences.
func Default() Output {
	return Output{
		Color:      true,
		BytesWidth: 8,
		HexWidth:   16,
	}
}

// Load layers the YAML file at path over the defaults. An empty path keeps
// the defaults; a named file must exist and parse.
func Load(path string) (Output, error) {
	out := Default()
	if path == "" {
		return out, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := out.validate(); err != nil {
		return out, fmt.Errorf("config %s: %w", path, err)
	}
	return out, nil
}

func (o Output) validate() error {
	if o.BytesWidth < 1 || o.BytesWidth > 15 {
		return fmt.Errorf("bytes_width %d out of range 1-15", o.BytesWidth)
	}
	if o.HexWidth < 1 || o.HexWidth > 64 {
		return fmt.Errorf("hex_width %d out of range 1-64", o.HexWidth)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers %d must not be negative", o.Workers)
	}
	return nil
}
