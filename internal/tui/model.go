// Package tui implements the floating widget: a full-screen bubbletea
// program showing live telemetry refreshed once per second, with an
// optional one-minute history view.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/pivisor/internal/config"
	apperrors "github.com/agbru/pivisor/internal/errors"
	"github.com/agbru/pivisor/internal/telemetry"
)

// Layout constants for the widget.
const (
	headerHeight  = 1
	footerHeight  = 1
	minBodyHeight = 7
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panel.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// Model is the root bubbletea model for the widget.
type Model struct {
	header HeaderModel
	panel  PanelModel
	chart  ChartModel
	footer FooterModel

	keymap KeyMap

	LayoutManager

	ctx       context.Context
	sampler   *telemetry.Sampler
	config    config.AppConfig
	paused    bool
	showGraph bool
	sampling  bool
	exitCode  int
}

// NewModel creates a new widget model.
func NewModel(ctx context.Context, sampler *telemetry.Sampler, cfg config.AppConfig, version string) Model {
	return Model{
		header:   NewHeaderModel(version),
		panel:    NewPanelModel(),
		chart:    NewChartModel(),
		footer:   NewFooterModel(),
		keymap:   DefaultKeyMap(),
		ctx:      ctx,
		sampler:  sampler,
		config:   cfg,
		exitCode: apperrors.ExitSuccess,
	}
}

// Init schedules the first tick and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
//
// The tick/sample exchange is strictly alternating: a TickMsg starts at
// most one sample, and the next tick is scheduled only after that
// sample's SnapshotMsg arrives. A slow probe therefore stretches the
// interval instead of stacking concurrent reads.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case TickMsg:
		// A stray tick while a sample is in flight must not start a
		// second read: the sampler's counter state is single-threaded.
		if m.sampling {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		m.sampling = true
		return m, sampleCmd(m.ctx, m.sampler)

	case SnapshotMsg:
		m.sampling = false
		m.panel.SetSnapshot(msg.Snapshot)
		m.chart.AddSnapshot(msg.Snapshot)
		return m, tickCmd()

	case ContextCancelledMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		// The tick chain keeps running while paused (TickMsg re-arms the
		// timer without sampling), so resuming must not schedule another
		// tick: that would leave two live chains and halve the period.
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Graph):
		m.showGraph = !m.showGraph
		m.footer.SetGraph(m.showGraph)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.header.Reset()
		m.panel.Reset()
		m.chart.Reset()
		return m, nil
	}

	return m, nil
}

// View renders the entire widget.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.header.View()
	footer := m.footer.View()

	var body string
	if m.showGraph {
		body = m.chart.View()
	} else {
		body = m.panel.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.panel.SetSize(m.width, m.bodyHeight())
	m.chart.SetSize(m.width, m.bodyHeight())
}

// Run is the public entry point for the widget mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, sampler *telemetry.Sampler, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, sampler, cfg, version)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after one sample interval.
func tickCmd() tea.Cmd {
	return tea.Tick(telemetry.SampleInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleCmd takes one telemetry reading off the UI goroutine.
func sampleCmd(ctx context.Context, sampler *telemetry.Sampler) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg{Snapshot: sampler.Sample(ctx)}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
