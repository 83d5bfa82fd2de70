package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/pivisor/internal/presenter"
	"github.com/agbru/pivisor/internal/telemetry"
)

// Utilization thresholds for severity coloring.
const (
	warnPercent = 70.0
	critPercent = 90.0
	warnTempC   = 70.0
	critTempC   = 80.0
)

// PanelModel renders the five metric slots of the widget body.
type PanelModel struct {
	snap   telemetry.Snapshot
	seeded bool
	width  int
	height int
}

// NewPanelModel creates an empty metrics panel.
func NewPanelModel() PanelModel {
	return PanelModel{}
}

// SetSize updates dimensions.
func (p *PanelModel) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// SetSnapshot stores the latest reading for display.
func (p *PanelModel) SetSnapshot(snap telemetry.Snapshot) {
	p.snap = snap
	p.seeded = true
}

// Reset clears the displayed reading.
func (p *PanelModel) Reset() {
	p.snap = telemetry.Snapshot{}
	p.seeded = false
}

// View renders the panel: one line per metric, colored by severity.
func (p PanelModel) View() string {
	var rows strings.Builder

	if !p.seeded {
		rows.WriteString(metricDimStyle.Render(" waiting for first sample..."))
	} else {
		lines := presenter.Format(p.snap)
		styled := []string{
			severityStyle(p.snap.CPUPercent).Render(" " + lines.CPU),
			severityStyle(p.snap.MemPercent).Render(" " + lines.Mem),
			severityStyle(p.snap.DiskPercent).Render(" " + lines.Disk),
			metricValueStyle.Render(" " + lines.Net),
			p.tempStyle().Render(" " + lines.Temp),
		}
		rows.WriteString(strings.Join(styled, "\n"))
	}

	return panelStyle.
		Width(p.width - 2).
		Height(p.height - 2).
		Render(rows.String())
}

// tempStyle picks the style for the temperature line: dim when the
// reading is unavailable, severity-colored otherwise.
func (p PanelModel) tempStyle() lipgloss.Style {
	if !p.snap.TempOK {
		return metricDimStyle
	}
	switch {
	case p.snap.TempCelsius >= critTempC:
		return metricCritStyle
	case p.snap.TempCelsius >= warnTempC:
		return metricWarnStyle
	}
	return metricValueStyle
}

// severityStyle picks the style for a utilization percentage.
func severityStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= critPercent:
		return metricCritStyle
	case percent >= warnPercent:
		return metricWarnStyle
	}
	return metricValueStyle
}
