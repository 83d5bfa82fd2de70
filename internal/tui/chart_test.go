package tui

import (
	"testing"

	"github.com/agbru/pivisor/internal/telemetry"
)

func TestChartModel_AddSnapshot(t *testing.T) {
	c := NewChartModel()

	c.AddSnapshot(telemetry.Snapshot{
		CPUPercent:  42.5,
		MemPercent:  61.2,
		TempCelsius: 48.3,
		TempOK:      true,
		DownKBps:    48.8,
		UpKBps:      10.0,
	})

	if c.cpu.Len() != 1 || c.mem.Len() != 1 || c.temp.Len() != 1 {
		t.Error("all histories should record the snapshot")
	}
	if c.down.Last() != 48.8 || c.up.Last() != 10.0 {
		t.Error("throughput histories should record the snapshot values")
	}
}

func TestChartModel_UnavailableTemperatureSkipped(t *testing.T) {
	c := NewChartModel()

	c.AddSnapshot(telemetry.Snapshot{TempCelsius: 0, TempOK: false})

	if c.temp.Len() != 0 {
		t.Error("the zero sentinel should not enter the temperature history")
	}
	if c.cpu.Len() != 1 {
		t.Error("other histories still record the snapshot")
	}
}

func TestChartModel_HistoryBounded(t *testing.T) {
	c := NewChartModel()

	for i := 0; i < HistoryLength+10; i++ {
		c.AddSnapshot(telemetry.Snapshot{CPUPercent: float64(i)})
	}

	if c.cpu.Len() != HistoryLength {
		t.Errorf("history length = %d, want %d", c.cpu.Len(), HistoryLength)
	}
	if c.cpu.Last() != float64(HistoryLength+9) {
		t.Errorf("most recent sample = %f, want %f", c.cpu.Last(), float64(HistoryLength+9))
	}
}

func TestChartModel_Reset(t *testing.T) {
	c := NewChartModel()
	c.AddSnapshot(telemetry.Snapshot{CPUPercent: 50, TempCelsius: 45, TempOK: true})
	c.Reset()

	if c.cpu.Len() != 0 || c.temp.Len() != 0 {
		t.Error("Reset should clear all histories")
	}
	if c.tracker.Indicators().Samples != 0 {
		t.Error("Reset should clear the session indicators")
	}
}
