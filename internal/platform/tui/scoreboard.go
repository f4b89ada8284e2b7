package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

const (
	boardRows     = 100 // entries loaded per game
	gameListWidth = 22  // side list, shown from wideBoard columns
	wideBoard     = 80
)

var (
	boardPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardTab = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)
	boardActiveTab = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardEmpty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
)

// boardOrder selects which entries the table lists.
type boardOrder int

const (
	orderTop boardOrder = iota
	orderRecent
)

func (o boardOrder) String() string {
	if o == orderRecent {
		return "RECENT"
	}
	return "HIGH SCORES"
}

type scoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Order  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Order, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev game")),
		Order:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "top/recent")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel browses stored scores game by game.
type ScoreboardModel struct {
	store  *storage.Store
	games  []registry.GameInfo
	game   int
	order  boardOrder
	scores []storage.ScoreEntry
	stats  *storage.GameStats

	table table.Model
	help  help.Model
	keys  scoreboardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel opens the board on the first registered game.
// A nil store shows empty boards.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		games:  registry.List(),
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= wideBoard
}

func (m ScoreboardModel) newTable() table.Model {
	avail := m.width - 6
	if m.wide() {
		avail -= gameListWidth + 4
	}
	dateWidth := max(12, min(avail-26, 20))

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 10},
			{Title: "Level", Width: 6},
			{Title: "Played", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// reload fetches the current game's entries in the current order.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.game].ID
		var err error
		if m.order == orderRecent {
			m.scores, err = m.store.RecentScores(id, boardRows)
		} else {
			m.scores, err = m.store.TopScores(id, boardRows)
		}
		if err != nil {
			m.scores = nil
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, 0, len(m.scores))
	for i, e := range m.scores {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Level),
			e.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.game = (m.game + delta + len(m.games)) % len(m.games)
	m.reload()
}

// Init does nothing.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation. Back and quit end the program so the
// scoreboard can run on its own; embedding models read IsGoingBack.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := m.order.String()
	if len(m.games) > 0 {
		title += " - " + m.games[m.game].Title
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle, title, m.width))
	b.WriteString("\n")
	if st := m.stats; st != nil && st.GamesCount > 0 {
		line := fmt.Sprintf("%d games  |  best %d  |  avg %.0f  |  best level %d",
			st.GamesCount, st.HighScore, st.AvgScore, st.BestLevel)
		b.WriteString(centerStyled(menuHintStyle, line, m.width))
	}
	b.WriteString("\n\n")

	board := boardPanel.Render(m.boardBody())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boardPanel.Render(m.gameList()), "  ", board))
	} else {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(board)
	}

	b.WriteString("\n")
	b.WriteString(menuHintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) boardBody() string {
	if len(m.scores) == 0 {
		return boardEmpty.Render("No scores recorded yet.\nPlay a game to set one!")
	}
	return m.table.View()
}

func (m ScoreboardModel) gameList() string {
	lines := make([]string, 0, len(m.games)+1)
	lines = append(lines, "Games")
	for i, g := range m.games {
		name := truncate(g.Title, gameListWidth-4)
		if i == m.game {
			lines = append(lines, menuSelectedStyle.Render("> "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return lipgloss.NewStyle().Width(gameListWidth).Render(strings.Join(lines, "\n"))
}

// tabs lists the games on one line, or only the current one between
// arrows when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	parts := make([]string, len(m.games))
	plain := 0
	for i, g := range m.games {
		name := truncate(g.Title, 10)
		plain += len(name) + 3
		if i == m.game {
			parts[i] = boardActiveTab.Render(name)
		} else {
			parts[i] = boardTab.Render(name)
		}
	}
	if plain > m.width-4 {
		return "< " + m.games[m.game].Title + " >"
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// IsGoingBack reports whether the user asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the board in its own program and reports whether
// the user went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
