package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Easy"},
	{config.DifficultyNormal, "Normal"},
	{config.DifficultyHard, "Hard"},
	{config.DifficultyFixed, "Fixed (no speed-up)"},
}

// DifficultyModel lets users choose a difficulty preset for a game.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	keyMapper *KeyMapper
	selected  *config.DifficultyPreset
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a selector for the game titled title. The
// cursor starts on Normal.
func NewDifficultyModel(title string, width int) DifficultyModel {
	return DifficultyModel{
		title:     title,
		cursor:    1,
		width:     width,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionFirst:
		m.cursor = 0
	case MenuActionLast:
		m.cursor = len(difficultyOptions) - 1
	case MenuActionSelect:
		preset := difficultyOptions[m.cursor].preset
		m.selected = &preset
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle, strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		line := fmt.Sprintf("  %-20s", opt.label)
		if i == m.cursor {
			b.WriteString(centerStyled(menuSelectedStyle, "> "+line[2:], m.width))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(menuHintStyle, "Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the chosen preset, or nil if still choosing.
func (m DifficultyModel) Selected() *config.DifficultyPreset {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector asks for a preset. The preset is nil when the
// user backed out or quit.
func RunDifficultySelector(title string, cfg core.RuntimeConfig) (preset *config.DifficultyPreset, quit bool, err error) {
	p := tea.NewProgram(NewDifficultyModel(title, cfg.ScreenW), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return nil, true, nil
	}
	return m.Selected(), m.IsQuitting(), nil
}
