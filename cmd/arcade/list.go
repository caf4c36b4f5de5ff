package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3-arcade/internal/games/match3/levels"
	"github.com/vovakirdan/match3-arcade/internal/registry"
)

var flagListIDs bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and board layouts",
	Long: `Shows the match-3 game modes and the IDs of the bundled board layouts.

Any mode can be combined with any layout:
  arcade play <mode> --layout <layout>

Use --ids for one mode ID per line, for scripts.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListIDs, "ids", false, "Print only mode IDs, one per line")
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if flagListIDs {
		for _, g := range games {
			fmt.Println(g.ID)
		}
		return
	}
	writeGameList(os.Stdout, games, levels.BundledIDs())
}

// writeGameList prints the mode table and the layout IDs. Columns are padded
// by display width.
func writeGameList(w io.Writer, games []registry.GameInfo, layouts []string) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games available.")
		return
	}

	idW, titleW := len("Mode"), len("Title")
	for _, g := range games {
		idW = max(idW, runewidth.StringWidth(g.ID))
		titleW = max(titleW, runewidth.StringWidth(g.Title))
	}
	row := func(id, title, desc string) {
		fmt.Fprintf(w, "  %s  %s  %s\n",
			runewidth.FillRight(id, idW), runewidth.FillRight(title, titleW), desc)
	}

	fmt.Fprintln(w, "Game modes:")
	fmt.Fprintln(w)
	row("Mode", "Title", "Description")
	row("----", "-----", "-----------")
	for _, g := range games {
		row(g.ID, g.Title, g.Description)
	}

	if len(layouts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Layouts: %s\n", strings.Join(layouts, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'arcade play <mode> --layout <layout>' to play, or 'arcade layouts --show' to preview boards.")
}
