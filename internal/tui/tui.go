// Package tui is the optional interactive listing viewer opened by
// thumbdisasm --view, grounded on the viewport-driven model in
// reverse/internal/reverse/cmd.model (Dhruvchaudhary255-reverse), trimmed to
// the single scrollable pane this tool needs.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")).
	Padding(0, 1)

type model struct {
	viewport viewport.Model
	content  string
	width    int
	height   int
}

// Run opens an interactive scrollable view of listing and blocks until the
// user quits.
func Run(listing string) error {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)
	vp.SetContent(highlight(strings.TrimSuffix(listing, "\n")))

	m := model{viewport: vp, content: listing}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.SetWidth(msg.Width)
		m.viewport.SetHeight(msg.Height - 2)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	menu := helpStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll  q quit", m.viewport.ScrollPercent()*100))
	return m.viewport.View() + "\n" + menu
}
