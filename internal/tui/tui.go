// Package tui is an interactive round viewer built on Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/okeysim/internal/display"
	"github.com/lox/okeysim/internal/simulator"
)

// Model is the Bubble Tea model for browsing dealt rounds.
type Model struct {
	sim    *simulator.Simulator
	logger *log.Logger

	roundViewport viewport.Model

	seed      int64
	result    *simulator.RoundResult
	err       error
	showHands bool

	width       int
	height      int
	initialized bool
	quitting    bool
}

// NewModel creates a viewer positioned at the given seed.
func NewModel(sim *simulator.Simulator, seed int64, logger *log.Logger) *Model {
	// Sized properly once the first WindowSizeMsg arrives.
	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		sim:           sim,
		logger:        logger.WithPrefix("tui"),
		roundViewport: vp,
	}
	m.deal(seed)
	return m
}

// deal scores the round for seed and refreshes the viewport.
func (m *Model) deal(seed int64) {
	m.seed = seed
	m.result, m.err = m.sim.RunSeed(seed)
	if m.err != nil {
		m.logger.Error("round failed", "seed", seed, "error", m.err)
	}
	m.refreshContent()
}

func (m *Model) refreshContent() {
	if m.err != nil {
		m.roundViewport.SetContent(ErrorStyle.Render(m.err.Error()))
		return
	}
	var content strings.Builder
	display.Round(&content, m.result, m.showHands)
	m.roundViewport.SetContent(content.String())
	m.roundViewport.GotoTop()
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "n", "enter":
			m.deal(m.seed + 1)
		case "p":
			m.deal(m.seed - 1)
		case "h":
			m.showHands = !m.showHands
			m.refreshContent()
		case "up", "k":
			m.roundViewport.ScrollUp(1)
		case "down", "j":
			m.roundViewport.ScrollDown(1)
		case "pgup", "b":
			m.roundViewport.HalfPageUp()
		case "pgdown", "f":
			m.roundViewport.HalfPageDown()
		case "home", "g":
			m.roundViewport.GotoTop()
		case "end", "G":
			m.roundViewport.GotoBottom()
		}
	}

	var cmd tea.Cmd
	m.roundViewport, cmd = m.roundViewport.Update(msg)
	return m, cmd
}

// View renders the viewer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(fmt.Sprintf(" okeysim • seed %d ", m.seed))
	help := InfoStyle.Render("n next round • p previous • h toggle hands • ↑↓ scroll • q quit")

	calculatedWidth := m.width - 2
	calculatedHeight := m.height - lipgloss.Height(header) - lipgloss.Height(help) - 2
	if calculatedWidth < 1 {
		calculatedWidth = 1
	}
	if calculatedHeight < 1 {
		calculatedHeight = 1
	}

	m.roundViewport.Width = calculatedWidth
	m.roundViewport.Height = calculatedHeight

	// On first proper sizing, reset to top to avoid starting scrolled down
	if !m.initialized && calculatedWidth > 1 && calculatedHeight > 1 {
		m.roundViewport.GotoTop()
		m.initialized = true
	}

	paneStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(calculatedWidth).
		Height(calculatedHeight)

	return lipgloss.JoinVertical(lipgloss.Top,
		header,
		paneStyle.Render(m.roundViewport.View()),
		help,
	)
}

// Run starts the viewer in the alternate screen and blocks until quit.
func Run(sim *simulator.Simulator, seed int64, logger *log.Logger) error {
	program := tea.NewProgram(NewModel(sim, seed, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
