// Package schema has configs, models and global variables for all parts of spendchart.
package schema

import "time"

// PayloadRecord is a single categorized transaction as delivered by the payload loader.
// Records are immutable once loaded; many records share a category.
type PayloadRecord struct {
	ID       int64     `json:"id,omitempty"`   // Optional identifier carried through from the payload
	Name     string    `json:"name,omitempty"` // Optional merchant or description
	Category string    `json:"category"`       // Category the amount is booked under
	Amount   int64     `json:"amount"`         // Integer currency units
	Time     time.Time `json:"time"`           // Instant of the transaction
}

// CategoryAggregate is the per-category rollup of records.
// Records keep the order in which they appeared in the input.
type CategoryAggregate struct {
	Category string          `json:"category"`
	Total    int64           `json:"total"`
	Records  []PayloadRecord `json:"records"`
}

// Aggregate is the output of the data aggregator for one payload.
// Categories are listed in first-seen order.
type Aggregate struct {
	Categories []CategoryAggregate `json:"categories"`
	SumAmount  int64               `json:"sum_amount"` // Denominator for angular proportions
	MinTime    time.Time           `json:"min_time"`
	MaxTime    time.Time           `json:"max_time"`
	MinAmount  int64               `json:"min_amount"`
	MaxAmount  int64               `json:"max_amount"`
}

// IsEmpty reports whether the aggregate holds no categories.
func (a *Aggregate) IsEmpty() bool {
	return a == nil || len(a.Categories) == 0
}

// RecordCount returns the number of records across all categories.
func (a *Aggregate) RecordCount() int {
	if a == nil {
		return 0
	}
	n := 0
	for _, c := range a.Categories {
		n += len(c.Records)
	}
	return n
}

// PieSector is one pie wedge bound to a category.
// Sectors of one chart are contiguous and their sweeps sum to a full rotation.
type PieSector struct {
	StartAngle float64         `json:"start_angle"` // Degrees in [0, 360)
	SweepAngle float64         `json:"sweep_angle"` // Degrees, > 0
	Color      Color           `json:"color"`
	Label      string          `json:"label"`
	Total      int64           `json:"total"`
	Records    []PayloadRecord `json:"records"`
}

// EndAngle returns the angle at which the sector ends.
func (s PieSector) EndAngle() float64 {
	return s.StartAngle + s.SweepAngle
}

// LinePoint is one plotted point of a line series.
type LinePoint struct {
	Day    int       `json:"day"` // Day of month, 1-based
	Amount int64     `json:"amount"`
	Time   time.Time `json:"time"`
}

// LineSeries is the per-category polyline of the line chart.
type LineSeries struct {
	Category string      `json:"category"`
	Color    Color       `json:"color"`
	Points   []LinePoint `json:"points"`
}

// ChartBounds are the data extrema that govern line chart axis scaling.
type ChartBounds struct {
	MaxAmount     int64 `json:"max_amount"`
	MaxDayOfMonth int   `json:"max_day_of_month"`
}

// LineLayout is the computed line chart: its bounds and one series per category.
type LineLayout struct {
	Bounds ChartBounds  `json:"bounds"`
	Series []LineSeries `json:"series"`
}

// ChartState is the persisted view state of both charts for one data snapshot.
// It survives surface recreation so layouts are restored without recomputation.
type ChartState struct {
	Version     int         `json:"version"`
	SnapshotKey string      `json:"snapshot_key"`
	Sectors     []PieSector `json:"sectors"`
	Line        *LineLayout `json:"line,omitempty"`
}

// PieResult is the outcome of building the pie chart for one payload.
type PieResult struct {
	SnapshotKey string        `json:"snapshot_key"`
	Restored    bool          `json:"restored"` // Layout came from the state store
	Records     int           `json:"records"`
	SumAmount   int64         `json:"sum_amount"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	Progress    float64       `json:"progress"`
	Sectors     []PieSector   `json:"sectors"`
	Commands    []DrawCommand `json:"-"`
}

// LineResult is the outcome of building the line chart for one payload.
type LineResult struct {
	SnapshotKey string        `json:"snapshot_key"`
	Restored    bool          `json:"restored"`
	Records     int           `json:"records"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	Layout      *LineLayout   `json:"layout"`
	Commands    []DrawCommand `json:"-"`
}

// TapResult is the outcome of hit-testing a pointer against the pie chart.
type TapResult struct {
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	Hit      bool            `json:"hit"`
	Angle    float64         `json:"angle"`
	Category string          `json:"category,omitempty"`
	Records  []PayloadRecord `json:"records"`
}

// AnimationFrame is one observed step of the reveal animation.
type AnimationFrame struct {
	Index    int           `json:"index"`
	Elapsed  time.Duration `json:"elapsed"`
	Progress float64       `json:"progress"`
	File     string        `json:"file,omitempty"` // Rendered frame, when frames are written
}
