// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/spendchart/schema"
)

// PayloadLoader supplies the records a chart is built from.
// Implementations never fail into the core: on any read or parse problem
// they report it out of band and return an empty list.
type PayloadLoader interface {
	Load(ctx context.Context) []schema.PayloadRecord
}

// Surface is a 2D immediate-mode drawing target with a Y-down coordinate system.
// Angles are in degrees, clockwise from the 3 o'clock axis.
type Surface interface {
	// Translate moves the origin of all subsequent operations by (dx, dy).
	Translate(dx, dy float64)

	// DrawLine strokes a straight segment.
	DrawLine(from, to schema.Point, paint *schema.Paint)

	// DrawArc strokes the part of the oval inscribed in bounds from startAngle over sweepAngle.
	DrawArc(bounds schema.Rect, startAngle, sweepAngle float64, paint *schema.Paint)

	// DrawPath strokes or fills a path.
	DrawPath(path *schema.Path, paint *schema.Paint)

	// DrawText draws text anchored at (x, y) according to the paint's alignment.
	DrawText(text string, x, y float64, paint *schema.Paint)
}

// StateManager defines the interface for managing the persistent stores.
// This allows the storage layer to be mocked for testing.
type StateManager interface {
	GetStateStore() StateStore
	GetRunStore() RunStore
}

// StateStore holds serialized chart view state keyed by data snapshot.
type StateStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.StateStatus, error)
	Close() error
}

// RunStore defines the interface for tracking chart builds and the sectors they produced.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, snapshotKey string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalRecords int) error

	// RecordSector stores one computed pie sector of a run
	RecordSector(runID int64, position int, sector schema.PieSector) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns retrieves all runs
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllSectors retrieves all recorded sectors
	GetAllSectors() ([]schema.SectorRecord, error)

	// Close closes the underlying connection
	Close() error
}
