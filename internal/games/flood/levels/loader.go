package levels

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-flood/internal/games/flood/levels/formats"
)

//go:embed defaults/levels.yaml
var defaultCatalogYAML []byte

// Default returns the built-in campaign.
// Panics if the embedded catalog is invalid, which is a build defect.
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("levels: embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse builds a catalog from YAML data.
func Parse(data []byte) (*Catalog, error) {
	yc, err := formats.ParseYAML(data)
	if err != nil {
		return nil, err
	}

	specs := make([]LevelSpec, len(yc.Levels))
	for i, yl := range yc.Levels {
		specs[i] = LevelSpec{
			ID:       yl.ID,
			GridSize: yl.GridSize,
			Colors:   yl.Colors,
			MaxMoves: yl.MaxMoves,
			Seed:     yl.Seed,
		}
	}

	name := yc.Name
	if name == "" {
		name = "Custom"
	}
	return NewCatalog(name, specs)
}

// LoadFile loads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !isSupportedExtension(ext) {
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
