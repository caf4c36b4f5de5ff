package sim

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

var lang = language.English

// Summary describes the distribution of one per-game value.
type Summary struct {
	Mean float64
	Std  float64
	Min  float64
	P10  float64
	P50  float64
	P90  float64
	Max  float64
}

// Report aggregates the results of a simulation run.
type Report struct {
	Strategy string
	Games    int
	Results  []GameResult
	Elapsed  time.Duration

	Score  Summary
	Moves  Summary
	Streak Summary

	TotalMoves      int
	Cascades        int
	PiecesDestroyed int
	TilesCleared    int
	ColorBombs      int
	AdjacentBombs   int
	Shuffles        int
	Regenerations   int
	Saturations     int
	Deadlocked      int // games that ran out of legal moves
}

// NewReport merges per-game results.
func NewReport(strategy string, results []GameResult) *Report {
	r := &Report{Strategy: strategy, Games: len(results), Results: results}

	scores := make([]float64, 0, len(results))
	moves := make([]float64, 0, len(results))
	streaks := make([]float64, 0, len(results))
	for _, res := range results {
		scores = append(scores, float64(res.Score))
		moves = append(moves, float64(res.Moves))
		streaks = append(streaks, float64(res.Stats.MaxStreak))

		r.TotalMoves += res.Stats.Moves
		r.Cascades += res.Stats.Cascades
		r.PiecesDestroyed += res.Stats.PiecesDestroyed
		r.TilesCleared += res.Stats.TilesCleared
		r.ColorBombs += res.Stats.ColorBombs
		r.AdjacentBombs += res.Stats.AdjacentBombs
		r.Shuffles += res.Stats.Shuffles
		r.Regenerations += res.Stats.Regenerations
		r.Saturations += res.Stats.Saturations
		if res.Deadlocked {
			r.Deadlocked++
		}
	}
	r.Score = summarize(scores)
	r.Moves = summarize(moves)
	r.Streak = summarize(streaks)
	return r
}

func summarize(x []float64) Summary {
	if len(x) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	s := Summary{
		Mean: stat.Mean(sorted, nil),
		Min:  sorted[0],
		P10:  stat.Quantile(0.1, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:  sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// CascadesPerMove is the average number of cascade passes a swap triggers.
func (r *Report) CascadesPerMove() float64 {
	if r.TotalMoves == 0 {
		return 0
	}
	return float64(r.Cascades) / float64(r.TotalMoves)
}

// ShufflesPerGame is the average number of deadlock shuffles per game.
func (r *Report) ShufflesPerGame() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Shuffles) / float64(r.Games)
}

// WriteTo prints the timing line and the summary tables.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString(formatDuration(r.Elapsed, r.Games))

	keys, msg := r.fmtBasic()
	b.WriteString(fmtTable(fmt.Sprintf("match-3 / %s", r.Strategy), keys, msg))

	keys, msg = fmtSummary(r.Score)
	b.WriteString(fmtTable("Score", keys, msg))

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (r *Report) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Games":            p.Sprintf("%d", r.Games),
		"Moves":            p.Sprintf("%d", r.TotalMoves),
		"Cascades / Move":  p.Sprintf("%.3f", r.CascadesPerMove()),
		"Max Streak (avg)": p.Sprintf("%.2f", r.Streak.Mean),
		"Pieces Destroyed": p.Sprintf("%d", r.PiecesDestroyed),
		"Tiles Cleared":    p.Sprintf("%d", r.TilesCleared),
		"Color Bombs":      p.Sprintf("%d", r.ColorBombs),
		"Adjacent Bombs":   p.Sprintf("%d", r.AdjacentBombs),
		"Shuffles / Game":  p.Sprintf("%.3f", r.ShufflesPerGame()),
		"Regenerations":    p.Sprintf("%d", r.Regenerations),
		"Saturations":      p.Sprintf("%d", r.Saturations),
		"Deadlocked Games": p.Sprintf("%d", r.Deadlocked),
	}
	keys := []string{"Games", "Moves", "Cascades / Move", "Max Streak (avg)", "Pieces Destroyed", "Tiles Cleared",
		"Color Bombs", "Adjacent Bombs", "Shuffles / Game", "Regenerations", "Saturations", "Deadlocked Games"}
	return keys, basic
}

func fmtSummary(s Summary) ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	msg := map[string]string{
		"Mean": p.Sprintf("%.1f", s.Mean),
		"STD":  p.Sprintf("%.1f", s.Std),
		"Min":  p.Sprintf("%.0f", s.Min),
		"P10":  p.Sprintf("%.0f", s.P10),
		"P50":  p.Sprintf("%.0f", s.P50),
		"P90":  p.Sprintf("%.0f", s.P90),
		"Max":  p.Sprintf("%.0f", s.Max),
	}
	return []string{"Mean", "STD", "Min", "P10", "P50", "P90", "Max"}, msg
}

func formatDuration(d time.Duration, games int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	gps := int(float64(games) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\ngps : %d games/sec\n", sec, gps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\ngps : %d games/sec\n", m, s, gps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\ngps : %d games/sec\n", h, m, s, gps)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW+2 > totalInner {
		maxValLen += titleW + 2 - totalInner
		totalInner = titleW + 2
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var b strings.Builder
	b.WriteString(top)
	b.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	b.WriteString(divider)
	for _, k := range keys {
		b.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
