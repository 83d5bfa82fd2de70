package tui

import (
	"time"

	"github.com/agbru/pivisor/internal/telemetry"
)

// TickMsg signals that a sample interval has elapsed and a new reading
// should be taken.
type TickMsg time.Time

// SnapshotMsg carries a completed telemetry reading back to the model.
type SnapshotMsg struct {
	Snapshot telemetry.Snapshot
}

// ContextCancelledMsg signals that the parent context was canceled
// (typically SIGINT or SIGTERM) and the program should exit.
type ContextCancelledMsg struct {
	Err error
}
