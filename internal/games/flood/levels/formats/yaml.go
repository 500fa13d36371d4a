// Package formats provides level catalog file parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLCatalog represents the YAML structure of a catalog file.
type YAMLCatalog struct {
	Name   string      `yaml:"name"`
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel represents a single level descriptor.
type YAMLLevel struct {
	ID       int   `yaml:"id"`
	GridSize int   `yaml:"grid_size"`
	Colors   int   `yaml:"colors"`
	MaxMoves int   `yaml:"max_moves"`
	Seed     int64 `yaml:"seed"`
}

// ParseYAML parses a catalog file. Field validation is left to the caller.
func ParseYAML(data []byte) (YAMLCatalog, error) {
	var yc YAMLCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return YAMLCatalog{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yc, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
