package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/spendchart/core/agg"
	"github.com/huangsam/spendchart/core/anim"
	"github.com/huangsam/spendchart/core/line"
	"github.com/huangsam/spendchart/core/palette"
	"github.com/huangsam/spendchart/core/pie"
	"github.com/huangsam/spendchart/core/render"
	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/logger"
	"github.com/huangsam/spendchart/schema"
	"go.uber.org/zap"
)

// Charts is the pair of chart hosts bound to one payload snapshot.
type Charts struct {
	Key      string
	Pie      *PieChart
	Line     *LineChart
	Restored bool // Layouts came from the state store
	Records  int
}

// StyleFromConfig derives the render style from the validated config.
func StyleFromConfig(cfg *contract.Config) render.Style {
	return render.Style{
		TextColor:       cfg.TextColor,
		TextSize:        cfg.ItemTextSize,
		Typeface:        cfg.ItemFontFamily,
		GridColor:       cfg.GridColor,
		GridStrokeWidth: 1,
		LineStrokeWidth: cfg.LineStrokeWidth,
		CornerRadius:    cfg.CornerRadius,
		CurrencySuffix:  cfg.CurrencySuffix,
	}
}

// NewCharts returns empty chart hosts styled from cfg.
func NewCharts(cfg *contract.Config, opts ...anim.Option) *Charts {
	style := StyleFromConfig(cfg)
	return &Charts{
		Pie: NewPieChart(style, cfg.StrokeWidth, opts...),
		Line: NewLineChart(style, cfg.Padding, cfg.GridLines, lineOptions(cfg)),
	}
}

func lineOptions(cfg *contract.Config) line.Options {
	return line.Options{
		Scale:      cfg.AmountScale,
		Location:   cfg.Location,
		SortPoints: cfg.SortPoints,
	}
}

// newAllocator builds the color allocator shared by both charts.
func newAllocator(cfg *contract.Config) (*palette.Allocator, error) {
	colors := cfg.Palette
	if len(colors) == 0 {
		colors = palette.Default
	}
	if cfg.HasSeed {
		return palette.NewSeeded(colors, cfg.Seed)
	}
	return palette.NewAllocator(colors, nil)
}

// BuildCharts restores both layouts from the state store when a matching
// snapshot was saved, and otherwise computes them (pie first, then line,
// drawing from one allocator) and saves them. Both charts are measured at the
// configured sizes. A nil store always computes.
func BuildCharts(cfg *contract.Config, records []schema.PayloadRecord, store contract.StateStore, opts ...anim.Option) (*Charts, error) {
	charts := NewCharts(cfg, opts...)
	charts.Key = SnapshotKey(records, cfg)
	charts.Records = len(records)

	if state := loadState(store, charts.Key); state != nil {
		RestoreState(state, charts.Pie, charts.Line)
		charts.Restored = true
		logger.Debug("chart state restored", zap.String("key", charts.Key))
	} else {
		alloc, err := newAllocator(cfg)
		if err != nil {
			return nil, err
		}
		aggregate := agg.Aggregate(records)
		charts.Pie.SetData(aggregate, alloc)
		charts.Line.SetData(aggregate, alloc)
		logger.Debug("chart layouts computed",
			zap.String("key", charts.Key),
			zap.Int("categories", len(aggregate.Categories)),
			zap.Int64("sum", aggregate.SumAmount))
		if len(records) > 0 {
			saveState(store, charts.Key, CaptureState(charts.Key, charts.Pie, charts.Line))
		}
	}

	charts.Pie.ComputeLayout(cfg.PieSize())
	charts.Line.ComputeLayout(cfg.LineSize())
	return charts, nil
}

func stateStore(mgr contract.StateManager) contract.StateStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetStateStore()
}

// BuildPie builds the pie chart for records at the configured reveal progress
// and records the build in the run store when one is configured.
func BuildPie(ctx context.Context, cfg *contract.Config, records []schema.PayloadRecord, mgr contract.StateManager) (*schema.PieResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()
	charts, err := BuildCharts(cfg, records, stateStore(mgr))
	if err != nil {
		return nil, err
	}
	charts.Pie.SetProgressFraction(cfg.Progress)

	sectors := charts.Pie.Sectors()
	trackRun(mgr, cfg, charts, sectors, started)

	width, height := cfg.PieSize()
	var sum int64
	for _, s := range sectors {
		sum += s.Total
	}
	return &schema.PieResult{
		SnapshotKey: charts.Key,
		Restored:    charts.Restored,
		Records:     charts.Records,
		SumAmount:   sum,
		Width:       width,
		Height:      height,
		Progress:    charts.Pie.Progress(),
		Sectors:     sectors,
		Commands:    charts.Pie.Plan(),
	}, nil
}

// BuildLine builds the line chart for records.
func BuildLine(ctx context.Context, cfg *contract.Config, records []schema.PayloadRecord, mgr contract.StateManager) (*schema.LineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	charts, err := BuildCharts(cfg, records, stateStore(mgr))
	if err != nil {
		return nil, err
	}
	width, height := cfg.LineSize()
	return &schema.LineResult{
		SnapshotKey: charts.Key,
		Restored:    charts.Restored,
		Records:     charts.Records,
		Width:       width,
		Height:      height,
		Layout:      charts.Line.Layout(),
		Commands:    charts.Line.Plan(),
	}, nil
}

// Tap builds the pie chart for records and hit-tests (x, y) against it,
// collecting the records the selection listener receives.
func Tap(ctx context.Context, cfg *contract.Config, records []schema.PayloadRecord, mgr contract.StateManager, x, y float64) (*schema.TapResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	charts, err := BuildCharts(cfg, records, stateStore(mgr))
	if err != nil {
		return nil, err
	}

	result := &schema.TapResult{X: x, Y: y, Records: []schema.PayloadRecord{}}
	if angle, ok := pie.TouchAngle(charts.Pie.Geometry(), x, y); ok {
		result.Angle = angle
	}
	charts.Pie.SetOnSectorSelected(func(selected []schema.PayloadRecord) {
		result.Records = selected
	})
	result.Hit = charts.Pie.Tap(x, y)
	if result.Hit && len(result.Records) > 0 {
		result.Category = result.Records[0].Category
	}
	return result, nil
}

// trackRun stores the run and its sectors; tracking failures only warn.
func trackRun(mgr contract.StateManager, cfg *contract.Config, charts *Charts, sectors []schema.PieSector, started time.Time) {
	if mgr == nil {
		return
	}
	runs := mgr.GetRunStore()
	if runs == nil {
		return
	}
	params := map[string]any{
		"width":        cfg.Width,
		"height":       cfg.Height,
		"stroke_width": cfg.StrokeWidth,
		"amount_scale": string(cfg.AmountScale),
		"restored":     charts.Restored,
	}
	runID, err := runs.BeginRun(started, charts.Key, params)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return
	}
	var errs []error
	for i, s := range sectors {
		errs = append(errs, runs.RecordSector(runID, i, s))
	}
	errs = append(errs, runs.EndRun(runID, time.Now(), charts.Records))
	if err := errors.Join(errs...); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
