package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const menuHelp = "↑/↓ move  •  enter play  •  tab scores  •  q quit"

// MenuItem is one game on the picker. The stats stay zero without a store.
type MenuItem struct {
	GameID    string
	Title     string
	High      int
	Played    int
	BestLevel int
}

// MenuModel picks a game, or asks for the scoreboard.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	keys   *KeyMapper

	selected       *MenuItem
	quitting       bool
	openScoreboard bool
}

func menuItems(store *storage.Store) []MenuItem {
	var stats map[string]*storage.GameStats
	if store != nil {
		//nolint:errcheck // stats are decoration; the menu works without them
		stats, _ = store.GetAllGamesStats()
	}

	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title}
		if st := stats[g.ID]; st != nil {
			items[i].High = st.HighScore
			items[i].Played = st.GamesCount
			items[i].BestLevel = st.BestLevel
		}
	}
	return items
}

// NewMenuModel lists every registered game with its stored stats.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:  menuItems(store),
		config: cfg,
		keys:   NewKeyMapper(),
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		n := len(m.items)
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		case MenuActionSelect:
			if n > 0 {
				item := m.items[m.cursor]
				m.selected = &item
				return m, tea.Quit
			}
		case MenuActionUp:
			if n > 0 {
				m.cursor = (m.cursor + n - 1) % n
			}
		case MenuActionDown:
			if n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		case MenuActionFirst:
			m.cursor = 0
		case MenuActionLast:
			m.cursor = max(0, n-1)
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	lines := []string{
		"",
		centerStyled(menuTitleStyle, "R E T R O   A R C A D E", w),
		"",
		centerText("Select a game", w),
		"",
	}
	for i, item := range m.items {
		hi := ""
		if item.High > 0 {
			hi = fmt.Sprintf("HI %6d", item.High)
		}
		row := fmt.Sprintf("%-16s %9s", item.Title, hi)
		if i == m.cursor {
			lines = append(lines, centerStyled(menuSelectedStyle, "> "+row, w))
		} else {
			lines = append(lines, centerText("  "+row, w))
		}
	}

	lines = append(lines, "", centerStyled(menuHintStyle, m.detail(), w))
	lines = append(lines, "", centerStyled(menuHintStyle, menuHelp, w), "")
	return strings.Join(lines, "\n")
}

// detail describes the highlighted game.
func (m MenuModel) detail() string {
	if len(m.items) == 0 {
		return "No games registered."
	}
	item := m.items[m.cursor]
	if item.Played == 0 {
		return "Not played yet."
	}
	plays := "plays"
	if item.Played == 1 {
		plays = "play"
	}
	return fmt.Sprintf("%d %s  •  best level %d", item.Played, plays, item.BestLevel)
}

// Selected is the picked game, nil until one is chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config is the runtime config with the latest window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// centerStyled centers by the unstyled width, then applies style.
func centerStyled(style lipgloss.Style, text string, width int) string {
	pad := max(0, (width-lipgloss.Width(text))/2)
	return strings.Repeat(" ", pad) + style.Render(text)
}

// MenuResult is what the standalone menu program decided.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker in its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
