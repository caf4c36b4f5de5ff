// Package levels provides board layout loading for the match-3 game.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/match3-arcade/internal/games/match3/core"
	"github.com/vovakirdan/match3-arcade/internal/games/match3/levels/formats"
)

//go:embed bundled/*.yaml
var bundledFS embed.FS

// Level is a named board layout.
type Level struct {
	ID       string
	Name     string
	Layout   core.Layout
	Metadata map[string]string
	FilePath string // empty for bundled layouts
}

// Description returns the layout's one-line description, if any.
func (l Level) Description() string {
	return l.Metadata["description"]
}

// Loader handles loading layouts from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all layout files.
// Invalid files are skipped. Returns layouts sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(p)) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sortByID(levels)
	return levels, nil
}

// LoadFile loads a single layout file. A file without an id takes its
// base name as ID.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}

	level, err := parse(data, p)
	if err != nil {
		return Level{}, err
	}
	level.FilePath = p
	return level, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	return findByID(levels, id)
}

// ListIDs returns all layout IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return ids(levels), nil
}

// Bundled returns the layouts compiled into the binary, sorted by ID.
func Bundled() ([]Level, error) {
	entries, err := fs.ReadDir(bundledFS, "bundled")
	if err != nil {
		return nil, fmt.Errorf("levels: reading bundled layouts: %w", err)
	}

	levels := make([]Level, 0, len(entries))
	for _, entry := range entries {
		name := path.Join("bundled", entry.Name())
		data, err := bundledFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", name, err)
		}
		level, err := parse(data, name)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}

	sortByID(levels)
	return levels, nil
}

// BundledIDs returns the IDs of the bundled layouts.
func BundledIDs() []string {
	levels, err := Bundled()
	if err != nil {
		return nil
	}
	return ids(levels)
}

// ErrNotFound is returned when no layout matches a name.
var ErrNotFound = errors.New("levels: layout not found")

// Resolve finds a layout by file path or bundled ID. An existing file wins
// over a bundled layout of the same name.
func Resolve(nameOrPath string) (Level, error) {
	if isSupportedExtension(filepath.Ext(nameOrPath)) {
		if _, err := os.Stat(nameOrPath); err == nil {
			return NewLoader(filepath.Dir(nameOrPath)).LoadFile(nameOrPath)
		}
	}

	levels, err := Bundled()
	if err != nil {
		return Level{}, err
	}
	return findByID(levels, nameOrPath)
}

func parse(data []byte, p string) (Level, error) {
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}

	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	name := parsed.Name
	if name == "" {
		name = id
	}

	return Level{
		ID:       id,
		Name:     name,
		Layout:   parsed.Layout,
		Metadata: parsed.Metadata,
	}, nil
}

func findByID(levels []Level, id string) (Level, error) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func ids(levels []Level) []string {
	out := make([]string, len(levels))
	for i, lvl := range levels {
		out[i] = lvl.ID
	}
	return out
}

func sortByID(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
