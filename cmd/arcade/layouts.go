package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3-arcade/internal/games/match3/core"
	"github.com/vovakirdan/match3-arcade/internal/games/match3/levels"
)

var (
	flagLayoutDir  string
	flagShowLayout bool
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List board layouts",
	Long: `Shows the bundled board layouts, or the layouts found in a directory.

Layout files are YAML documents with a size, a spawn offset and a list of
blank and breakable cells. Invalid files in a directory are skipped.

Examples:
  arcade layouts
  arcade layouts --show
  arcade layouts --dir ./boards`,
	Run: runLayouts,
}

func init() {
	layoutsCmd.Flags().StringVar(&flagLayoutDir, "dir", "", "Directory to scan for layout files")
	layoutsCmd.Flags().BoolVar(&flagShowLayout, "show", false, "Draw each layout's blank and breakable cells")
}

func runLayouts(_ *cobra.Command, _ []string) {
	var (
		list []levels.Level
		err  error
	)
	if flagLayoutDir != "" {
		list, err = levels.NewLoader(flagLayoutDir).LoadAll()
	} else {
		list, err = levels.Bundled()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(list) == 0 {
		fmt.Println("No layouts found.")
		return
	}

	maxIDLen := 2
	for _, lvl := range list {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "----")
	for _, lvl := range list {
		size := fmt.Sprintf("%dx%d", lvl.Layout.Width, lvl.Layout.Height)
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, lvl.ID, size, lvl.Name)
		if desc := lvl.Description(); desc != "" {
			fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "", "", desc)
		}
		if flagShowLayout {
			fmt.Println()
			fmt.Print(drawLayout(lvl))
			fmt.Println()
		}
	}

	fmt.Println()
	fmt.Println("Run 'arcade play match3 --layout <id>' to play a layout.")
}

// drawLayout renders a layout top row first: '#' blank, a digit for a
// breakable tile's hit points (0 = default), '.' for a plain cell.
func drawLayout(lvl levels.Level) string {
	l := lvl.Layout
	cells := make([][]byte, l.Height)
	for row := range cells {
		cells[row] = []byte(strings.Repeat(".", l.Width))
	}
	for _, t := range l.Tiles {
		switch t.Kind {
		case core.TileBlank:
			cells[t.Row][t.Col] = '#'
		case core.TileBreakable:
			cells[t.Row][t.Col] = byte('0' + min(t.HitPoints, 9))
		}
	}

	var b strings.Builder
	for row := l.Height - 1; row >= 0; row-- {
		b.WriteString("    ")
		b.Write(cells[row])
		b.WriteByte('\n')
	}
	return b.String()
}
