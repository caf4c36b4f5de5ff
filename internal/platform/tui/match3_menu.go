package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3-arcade/internal/core"
	"github.com/vovakirdan/match3-arcade/internal/games/match3/levels"
)

// Match3Mode represents the selected game mode.
type Match3Mode int

const (
	Match3ModeMoves Match3Mode = iota
	Match3ModeEndless
)

// Match3Selection holds the user's selection from the match-3 menu.
type Match3Selection struct {
	Mode   Match3Mode
	Layout string // bundled layout ID, empty keeps the configured layout
}

// Match3MenuModel lets users choose the game mode and board layout.
type Match3MenuModel struct {
	cursor         int
	layoutCursor   int
	inLayoutSelect bool
	width          int
	height         int
	keys           KeyMap
	layouts        []levels.Level
	selection      Match3Selection
	choosing       bool
	quitting       bool
	back           bool
	theme          MenuTheme
}

var match3Modes = []string{
	"Classic (limited moves)",
	"Endless",
	"Select Layout...",
}

// NewMatch3MenuModel creates a new match-3 mode selection model.
func NewMatch3MenuModel(width, height int, layouts []levels.Level) Match3MenuModel {
	return Match3MenuModel{
		width:    width,
		height:   height,
		keys:     DefaultKeyMap(),
		layouts:  layouts,
		choosing: true,
		theme:    menuTheme,
	}
}

// Init initializes the model.
func (m Match3MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Match3MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keys.MenuAction(msg)
		if m.inLayoutSelect {
			return m.handleLayoutSelectKey(action)
		}
		return m.handleModeSelectKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Match3MenuModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(match3Modes)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			m.choosing = false
			m.selection = Match3Selection{Mode: Match3ModeMoves}
			return m, tea.Quit
		case 1:
			m.choosing = false
			m.selection = Match3Selection{Mode: Match3ModeEndless}
			return m, tea.Quit
		case 2:
			if len(m.layouts) > 0 {
				m.inLayoutSelect = true
				m.layoutCursor = 0
			}
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Match3MenuModel) handleLayoutSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.layoutCursor > 0 {
			m.layoutCursor--
		}
	case MenuActionDown:
		if m.layoutCursor < len(m.layouts)-1 {
			m.layoutCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = Match3Selection{
			Mode:   Match3ModeMoves,
			Layout: m.layouts[m.layoutCursor].ID,
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLayoutSelect = false
	}

	return m, nil
}

// View renders the mode/layout selection.
func (m Match3MenuModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLayoutSelect {
		return m.viewLayoutSelect()
	}
	return m.viewModeSelect()
}

func (m Match3MenuModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("M A T C H - 3"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Subtitle.Render("Select game mode:"), m.width))
	b.WriteString("\n\n")

	for i, mode := range match3Modes {
		b.WriteString(centerText(m.item(mode, i == m.cursor), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Controls.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m Match3MenuModel) viewLayoutSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("SELECT LAYOUT"), m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.layouts {
		line := fmt.Sprintf("%2d. %s (%dx%d)", i+1, lvl.Name, lvl.Layout.Width, lvl.Layout.Height)
		b.WriteString(centerText(m.item(line, i == m.layoutCursor), m.width))
		b.WriteString("\n")
	}

	if desc := m.layouts[m.layoutCursor].Description(); desc != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Description.Render(desc), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Controls.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m Match3MenuModel) item(text string, active bool) string {
	if active {
		return m.theme.ItemActive.Render("> " + text)
	}
	return m.theme.ItemNormal.Render("  " + text)
}

// Selected returns the selection, or nil if still choosing.
func (m Match3MenuModel) Selected() *Match3Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m Match3MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m Match3MenuModel) WantsBack() bool {
	return m.back
}

// RunMatch3Selector runs the mode/layout selection and returns the selection.
// A nil selection means the user backed out.
func RunMatch3Selector(cfg core.RuntimeConfig) (*Match3Selection, error) {
	layouts, err := levels.Bundled()
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(
		NewMatch3MenuModel(cfg.ScreenW, cfg.ScreenH, layouts),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(Match3MenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
