package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PagerModel scrolls through a rendered hunk.
type PagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool

	titleStyle lipgloss.Style
	helpStyle  lipgloss.Style
}

func NewPagerModel(title, content string) PagerModel {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle()

	return PagerModel{
		title:    title,
		content:  content,
		viewport: vp,

		titleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),

		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

func (m PagerModel) Init() tea.Cmd {
	return nil
}

func (m PagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2 // title + help
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.viewport.Style = lipgloss.NewStyle()
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
		m.viewport.SetContent(m.content)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "j", "down":
			m.viewport.LineDown(1)

		case "k", "up":
			m.viewport.LineUp(1)

		case "d", "ctrl+d":
			m.viewport.HalfViewDown()

		case "u", "ctrl+u":
			m.viewport.HalfViewUp()

		case "f", "pgdn", " ":
			m.viewport.ViewDown()

		case "b", "pgup":
			m.viewport.ViewUp()

		case "g", "home":
			m.viewport.GotoTop()

		case "G", "end":
			m.viewport.GotoBottom()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m PagerModel) View() string {
	if !m.ready {
		return "Loading hunk..."
	}

	var sections []string
	sections = append(sections, m.titleStyle.Render("Hunk "+m.title))
	sections = append(sections, m.viewport.View())
	sections = append(sections, m.helpStyle.Render("j/k: line by line | d/u: half page | f/b: full page | g/G: top/bottom | q: back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// TeaPager shows hunks full screen and returns when the operator quits.
type TeaPager struct {
	View *HunkView
}

func (p *TeaPager) Page(title string, lines []string) error {
	m := NewPagerModel(title, p.View.Render(title, lines))
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
