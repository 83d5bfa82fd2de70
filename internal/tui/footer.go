package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the bottom bar: key help and sampling status.
type FooterModel struct {
	paused bool
	graph  bool
	width  int
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetPaused updates the paused indicator.
func (f *FooterModel) SetPaused(paused bool) {
	f.paused = paused
}

// SetGraph updates the graph-view indicator.
func (f *FooterModel) SetGraph(graph bool) {
	f.graph = graph
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// View renders the footer.
func (f FooterModel) View() string {
	graphDesc := "graph"
	if f.graph {
		graphDesc = "gauges"
	}
	pauseDesc := "pause"
	if f.paused {
		pauseDesc = "resume"
	}

	help := strings.Join([]string{
		keyHelp("q", "quit"),
		keyHelp("p", pauseDesc),
		keyHelp("g", graphDesc),
		keyHelp("r", "reset"),
	}, footerDescStyle.Render("  "))

	status := statusRunningStyle.Render("● LIVE")
	if f.paused {
		status = statusPausedStyle.Render("● PAUSED")
	}

	gap := f.width - lipgloss.Width(help) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}

	return " " + help + spaces(gap) + status
}

func keyHelp(k, desc string) string {
	return footerKeyStyle.Render(k) + footerDescStyle.Render(" "+desc)
}
