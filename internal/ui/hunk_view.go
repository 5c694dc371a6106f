package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HunkView echoes hunks and resolver feedback to the operator.
type HunkView struct {
	w      io.Writer
	styled bool

	headerStyle    lipgloss.Style
	removedStyle   lipgloss.Style
	addedStyle     lipgloss.Style
	separatorStyle lipgloss.Style
	markerStyle    lipgloss.Style
	noticeStyle    lipgloss.Style
}

func NewHunkView(w io.Writer, styled bool) *HunkView {
	return &HunkView{
		w:      w,
		styled: styled,

		headerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),

		removedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),

		addedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")),

		separatorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")),

		markerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),

		noticeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

// Render formats a hunk header and body, one line per body line.
func (v *HunkView) Render(header string, body []string) string {
	lines := make([]string, 0, len(body)+1)
	lines = append(lines, v.style(v.headerStyle, header))
	for _, line := range body {
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "<"):
			lines = append(lines, v.style(v.removedStyle, line))
		case strings.HasPrefix(line, ">"):
			lines = append(lines, v.style(v.addedStyle, line))
		case line == "---":
			lines = append(lines, v.style(v.separatorStyle, line))
		case strings.HasPrefix(line, `\`):
			lines = append(lines, v.style(v.markerStyle, line))
		default:
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func (v *HunkView) ShowHunk(header string, body []string) {
	fmt.Fprintln(v.w, v.Render(header, body))
}

func (v *HunkView) Notice(msg string) {
	fmt.Fprintln(v.w, v.style(v.noticeStyle, msg))
}

func (v *HunkView) Warn(msg string) {
	if v.styled {
		WarningColor.Fprintf(v.w, "idiff: %s\n", msg)
		return
	}
	fmt.Fprintf(v.w, "idiff: %s\n", msg)
}

func (v *HunkView) style(s lipgloss.Style, text string) string {
	if !v.styled {
		return text
	}
	return s.Render(text)
}
