// Package formats provides pluggable layout file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/match3-arcade/internal/games/match3/core"
)

// YAMLLayout represents the YAML structure for a layout file.
type YAMLLayout struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Offset   int               `yaml:"offset,omitempty"`
	Map      []string          `yaml:"map,omitempty"`
	Tiles    []YAMLTile        `yaml:"tiles,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents board dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLTile represents a single special cell. Y counts from the bottom row.
type YAMLTile struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Kind string `yaml:"kind"`
	HP   int    `yaml:"hp,omitempty"`
}

// Level represents a parsed layout ready for use.
type Level struct {
	ID       string
	Name     string
	Layout   core.Layout
	Metadata map[string]string
}

// ParseYAML parses a YAML layout file.
// The board comes from an ASCII map, a size plus a tile list, or both;
// a map sets the size when none is given.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	layout := core.Layout{
		Width:  yl.Size.W,
		Height: yl.Size.H,
		Offset: yl.Offset,
	}

	if len(yl.Map) > 0 {
		tiles, w, h, err := parseMap(yl.Map)
		if err != nil {
			return Level{}, err
		}
		if layout.Width == 0 && layout.Height == 0 {
			layout.Width, layout.Height = w, h
		}
		if layout.Width != w || layout.Height != h {
			return Level{}, fmt.Errorf("map is %dx%d but size is %dx%d", w, h, layout.Width, layout.Height)
		}
		layout.Tiles = tiles
	}

	for _, t := range yl.Tiles {
		kind, ok := core.ParseTileKind(t.Kind)
		if !ok {
			return Level{}, fmt.Errorf("tile at %d,%d: unknown kind %q", t.X, t.Y, t.Kind)
		}
		if kind == core.TileNormal {
			continue
		}
		layout.Tiles = append(layout.Tiles, core.Tile{Col: t.X, Row: t.Y, Kind: kind, HitPoints: t.HP})
	}

	if err := layout.Validate(); err != nil {
		return Level{}, err
	}

	return Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Layout:   layout,
		Metadata: yl.Metadata,
	}, nil
}

// parseMap reads an ASCII board, top row first.
// '.' is a normal cell, '#' a blank cell and '1'-'9' a breakable tile with
// that many hit points.
func parseMap(rows []string) ([]core.Tile, int, int, error) {
	h := len(rows)
	w := len(rows[0])
	var tiles []core.Tile
	for i, line := range rows {
		if len(line) != w {
			return nil, 0, 0, fmt.Errorf("map row %d has width %d, want %d", i, len(line), w)
		}
		row := h - 1 - i
		for col, ch := range line {
			switch {
			case ch == '.':
			case ch == '#':
				tiles = append(tiles, core.Tile{Col: col, Row: row, Kind: core.TileBlank})
			case ch >= '1' && ch <= '9':
				tiles = append(tiles, core.Tile{Col: col, Row: row, Kind: core.TileBreakable, HitPoints: int(ch - '0')})
			default:
				return nil, 0, 0, fmt.Errorf("map row %d: unknown cell %q", i, ch)
			}
		}
	}
	return tiles, w, h, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
