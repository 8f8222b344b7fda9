package core

import (
	"context"
	"sync"
	"time"

	"github.com/huangsam/spendchart/core/anim"
	"github.com/huangsam/spendchart/core/line"
	"github.com/huangsam/spendchart/core/pie"
	"github.com/huangsam/spendchart/core/render"
	"github.com/huangsam/spendchart/schema"
)

// ColorSource hands out chart colors. Both charts of a payload share one source, pie first.
type ColorSource interface {
	Next() schema.Color
}

// PieChart hosts the pie lifecycle: data binding, measuring, planning,
// animated reveal and single-tap selection.
type PieChart struct {
	mu          sync.RWMutex
	style       render.Style
	strokeWidth float64
	sectors     []schema.PieSector
	geom        pie.Geometry
	reveal      *anim.Reveal
	driver      *anim.Driver
	onSelected  func(records []schema.PayloadRecord)
}

// NewPieChart returns an empty, fully revealed pie chart.
func NewPieChart(style render.Style, strokeWidth float64, opts ...anim.Option) *PieChart {
	reveal := anim.NewReveal(1)
	return &PieChart{
		style:       style,
		strokeWidth: strokeWidth,
		reveal:      reveal,
		driver:      anim.NewDriver(reveal, opts...),
	}
}

// SetData computes the sectors of aggregate, drawing one color per category.
func (c *PieChart) SetData(aggregate *schema.Aggregate, colors ColorSource) {
	sectors := pie.Compute(aggregate, colors)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sectors = sectors
}

// SetSectors binds already computed sectors, as when restoring saved state.
func (c *PieChart) SetSectors(sectors []schema.PieSector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sectors = sectors
}

// Sectors returns the current sectors.
func (c *PieChart) Sectors() []schema.PieSector {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sectors
}

// ComputeLayout measures the pie for a width x height surface.
func (c *PieChart) ComputeLayout(width, height float64) pie.Geometry {
	geom := pie.Measure(width, height, c.strokeWidth)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.geom = geom
	return geom
}

// Geometry returns the last measured geometry.
func (c *PieChart) Geometry() pie.Geometry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.geom
}

// Plan returns the draw commands for the current reveal progress.
func (c *PieChart) Plan() []schema.DrawCommand {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return render.PlanPie(c.sectors, c.geom, c.style, c.reveal.Progress())
}

// Progress returns the current reveal fraction.
func (c *PieChart) Progress() float64 {
	return c.reveal.Progress()
}

// SetProgressFraction stops any animation and shows the pie revealed up to progress.
func (c *PieChart) SetProgressFraction(progress float64) {
	c.driver.Stop()
	c.reveal.Set(progress)
}

// SetProgress animates the reveal from from/360 to to/360 over duration.
// It cancels any animation already running; the channel closes when this one ends.
func (c *PieChart) SetProgress(ctx context.Context, from, to int, duration time.Duration) <-chan struct{} {
	return c.driver.Start(ctx, float64(from), float64(to), duration)
}

// StopAnimation cancels a running reveal, leaving progress where it is.
func (c *PieChart) StopAnimation() {
	c.driver.Stop()
}

// SetOnSectorSelected registers the selection listener. A nil fn removes it.
func (c *PieChart) SetOnSectorSelected(fn func(records []schema.PayloadRecord)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSelected = fn
}

// Tap hit-tests a pointer position and notifies the listener with the records
// of the sector beneath it. It reports whether a sector was hit.
func (c *PieChart) Tap(x, y float64) bool {
	c.mu.RLock()
	idx, ok := pie.HitTest(c.geom, c.sectors, x, y)
	fn := c.onSelected
	var records []schema.PayloadRecord
	if ok {
		records = c.sectors[idx].Records
	}
	c.mu.RUnlock()

	if ok && fn != nil {
		fn(records)
	}
	return ok
}

// LineChart hosts the line chart lifecycle: data binding, measuring and planning.
type LineChart struct {
	mu        sync.RWMutex
	style     render.Style
	padding   float64
	gridLines int
	opts      line.Options
	layout    *schema.LineLayout
	frame     line.Frame
	measured  bool
}

// NewLineChart returns an empty line chart.
func NewLineChart(style render.Style, padding float64, gridLines int, opts line.Options) *LineChart {
	return &LineChart{
		style:     style,
		padding:   padding,
		gridLines: gridLines,
		opts:      opts,
		layout:    &schema.LineLayout{},
	}
}

// SetData computes one series per category of aggregate.
func (c *LineChart) SetData(aggregate *schema.Aggregate, colors ColorSource) {
	layout := line.Compute(aggregate, colors, c.opts)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layout = layout
	c.remeasureLocked()
}

// SetLayout binds an already computed layout, as when restoring saved state.
func (c *LineChart) SetLayout(layout *schema.LineLayout) {
	if layout == nil {
		layout = &schema.LineLayout{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layout = layout
	c.remeasureLocked()
}

// Layout returns the current layout.
func (c *LineChart) Layout() *schema.LineLayout {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layout
}

// ComputeLayout measures the plot frame for a width x height surface.
// Binding new data later re-measures at the same size.
func (c *LineChart) ComputeLayout(width, height float64) line.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame = line.Measure(width, height, c.padding, c.gridLines, c.layout.Bounds)
	c.measured = true
	return c.frame
}

// Frame returns the last measured frame.
func (c *LineChart) Frame() line.Frame {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frame
}

func (c *LineChart) remeasureLocked() {
	if c.measured {
		c.frame = line.Measure(c.frame.Width, c.frame.Height, c.padding, c.gridLines, c.layout.Bounds)
	}
}

// Plan returns the draw commands of the chart.
func (c *LineChart) Plan() []schema.DrawCommand {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return render.PlanLine(c.layout, c.frame, c.style)
}
