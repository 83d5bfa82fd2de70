package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/pivisor/internal/metrics"
	"github.com/agbru/pivisor/internal/telemetry"
)

// HistoryLength is the number of samples retained per metric, one per
// second, giving a one-minute rolling window.
const HistoryLength = 60

// ChartModel renders the rolling history view: a braille chart of CPU
// utilization, sparklines for the other metrics, and session indicators.
type ChartModel struct {
	cpu     *RingBuffer
	mem     *RingBuffer
	temp    *RingBuffer
	down    *RingBuffer
	up      *RingBuffer
	tracker *metrics.Tracker
	width   int
	height  int
}

// NewChartModel creates an empty chart with one-minute histories.
func NewChartModel() ChartModel {
	return ChartModel{
		cpu:     NewRingBuffer(HistoryLength),
		mem:     NewRingBuffer(HistoryLength),
		temp:    NewRingBuffer(HistoryLength),
		down:    NewRingBuffer(HistoryLength),
		up:      NewRingBuffer(HistoryLength),
		tracker: metrics.NewTracker(),
	}
}

// SetSize updates dimensions.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// AddSnapshot appends a reading to every history.
func (c *ChartModel) AddSnapshot(snap telemetry.Snapshot) {
	c.cpu.Push(snap.CPUPercent)
	c.mem.Push(snap.MemPercent)
	if snap.TempOK {
		c.temp.Push(snap.TempCelsius)
	}
	c.down.Push(snap.DownKBps)
	c.up.Push(snap.UpKBps)
	c.tracker.Observe(snap)
}

// Reset clears all histories and session indicators.
func (c *ChartModel) Reset() {
	c.cpu.Reset()
	c.mem.Reset()
	c.temp.Reset()
	c.down.Reset()
	c.up.Reset()
	c.tracker.Reset()
}

// View renders the history view.
func (c ChartModel) View() string {
	var rows strings.Builder

	innerWidth := c.width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	chartRows := c.height - 9
	if chartRows < 2 {
		chartRows = 2
	}

	rows.WriteString(metricLabelStyle.Render(" CPU % (last 60s)"))
	for _, line := range RenderBrailleChart(c.cpu.Slice(), innerWidth, chartRows) {
		rows.WriteString("\n ")
		rows.WriteString(chartBarStyle.Render(line))
	}

	rows.WriteString("\n")
	rows.WriteString(c.sparkRow("RAM ", memSparklineStyle.Render(RenderSparkline(c.mem.Slice())), fmt.Sprintf("%5.1f%%", c.mem.Last())))
	rows.WriteString(c.sparkRow("DOWN", netSparklineStyle.Render(RenderScaledSparkline(c.down.Slice())), fmt.Sprintf("%6.1f KB/s", c.down.Last())))
	rows.WriteString(c.sparkRow("UP  ", netSparklineStyle.Render(RenderScaledSparkline(c.up.Slice())), fmt.Sprintf("%6.1f KB/s", c.up.Last())))

	rows.WriteString("\n")
	rows.WriteString(c.indicatorRow())

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(rows.String())
}

// sparkRow renders one labeled sparkline line.
func (c ChartModel) sparkRow(label, spark, value string) string {
	return fmt.Sprintf("\n %s %s %s",
		metricLabelStyle.Render(label),
		spark,
		metricValueStyle.Render(value))
}

// indicatorRow renders the session summary: average CPU, temperature
// extremes, peak throughput.
func (c ChartModel) indicatorRow() string {
	ind := c.tracker.Indicators()

	tempRange := "n/a"
	if ind.TempSeen {
		tempRange = fmt.Sprintf("%.1f-%.1f°C", ind.TempMin, ind.TempMax)
	}

	return fmt.Sprintf("\n %s %s  %s %s  %s %s",
		metricLabelStyle.Render("avg cpu:"),
		metricValueStyle.Render(fmt.Sprintf("%.1f%%", ind.AvgCPU)),
		metricLabelStyle.Render("temp:"),
		metricValueStyle.Render(tempRange),
		metricLabelStyle.Render("peak ↓/↑:"),
		metricValueStyle.Render(fmt.Sprintf("%.1f/%.1f KB/s", ind.PeakDown, ind.PeakUp)))
}
