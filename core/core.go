// Package core has core logic for building, restoring, animating and hit-testing charts.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/huangsam/spendchart/core/anim"
	"github.com/huangsam/spendchart/core/render"
	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/logger"
	"github.com/huangsam/spendchart/internal/outwriter"
	"github.com/huangsam/spendchart/internal/surface"
	"github.com/huangsam/spendchart/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExecutorFunc defines the function signature for executing the different chart commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, loader contract.PayloadLoader, mgr contract.StateManager) error

// ExecutePie builds the pie chart and prints it in the configured output format.
func ExecutePie(ctx context.Context, cfg *contract.Config, loader contract.PayloadLoader, mgr contract.StateManager) error {
	start := time.Now()
	result, err := BuildPie(ctx, cfg, loader.Load(ctx), mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WritePie(result, cfg, time.Since(start))
}

// ExecuteLine builds the line chart and prints it in the configured output format.
func ExecuteLine(ctx context.Context, cfg *contract.Config, loader contract.PayloadLoader, mgr contract.StateManager) error {
	start := time.Now()
	result, err := BuildLine(ctx, cfg, loader.Load(ctx), mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteLine(result, cfg, time.Since(start))
}

// ExecuteTap hit-tests the configured pointer against the pie chart and prints the selection.
func ExecuteTap(ctx context.Context, cfg *contract.Config, loader contract.PayloadLoader, mgr contract.StateManager) error {
	start := time.Now()
	result, err := Tap(ctx, cfg, loader.Load(ctx), mgr, cfg.TapX, cfg.TapY)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTap(result, cfg, time.Since(start))
}

// ExecuteAnimate runs the pie reveal in real time and reports every frame.
// With a frames directory each frame is also rendered to a PNG file.
func ExecuteAnimate(ctx context.Context, cfg *contract.Config, loader contract.PayloadLoader, mgr contract.StateManager) error {
	start := time.Now()
	frames, err := Animate(ctx, cfg, loader.Load(ctx), mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteAnimation(frames, cfg, time.Since(start))
}

// Animate drives the pie reveal from 0 to a full rotation over the configured
// duration, sampling about cfg.Frames frames.
func Animate(ctx context.Context, cfg *contract.Config, records []schema.PayloadRecord, mgr contract.StateManager) ([]schema.AnimationFrame, error) {
	interval := max(cfg.AnimationDuration/time.Duration(cfg.Frames), time.Millisecond)
	ticks := make(chan float64, cfg.Frames+2)
	onFrame := func(p float64) {
		select {
		case ticks <- p:
		default: // Slow consumer, drop the frame
		}
	}

	charts, err := BuildCharts(cfg, records, stateStore(mgr), anim.WithFrameInterval(interval), anim.WithOnFrame(onFrame))
	if err != nil {
		return nil, err
	}
	if cfg.FramesDir != "" {
		if err := os.MkdirAll(cfg.FramesDir, 0o755); err != nil {
			return nil, fmt.Errorf("create frames dir: %w", err)
		}
	}

	var frames []schema.AnimationFrame
	var began time.Time
	emit := func(p float64) {
		frame := schema.AnimationFrame{Index: len(frames), Elapsed: time.Since(began), Progress: p}
		if cfg.FramesDir != "" {
			frame.File = filepath.Join(cfg.FramesDir, fmt.Sprintf("frame_%04d.png", frame.Index))
		}
		frames = append(frames, frame)
	}

	began = time.Now()
	done := charts.Pie.SetProgress(ctx, 0, int(schema.FullRotation), cfg.AnimationDuration)
	for running := true; running; {
		select {
		case p := <-ticks:
			emit(p)
		case <-done:
			running = false
		}
	}
	// Drain frames written before the run ended
	for drained := false; !drained; {
		select {
		case p := <-ticks:
			emit(p)
		default:
			drained = true
		}
	}
	logger.Debug("animation finished", zap.Int("frames", len(frames)))
	if err := ctx.Err(); err != nil {
		return frames, err
	}

	if cfg.FramesDir != "" {
		if err := renderFrames(ctx, cfg, charts, frames); err != nil {
			return nil, err
		}
	}
	return frames, nil
}

// renderFrames writes one PNG per frame, encoding up to GOMAXPROCS frames at a time.
func renderFrames(ctx context.Context, cfg *contract.Config, charts *Charts, frames []schema.AnimationFrame) error {
	sectors := charts.Pie.Sectors()
	geom := charts.Pie.Geometry()
	style := StyleFromConfig(cfg)
	width, height := cfg.PieSize()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, frame := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cmds := render.PlanPie(sectors, geom, style, frame.Progress)
			if err := surface.SavePNG(frame.File, cmds, int(width), int(height)); err != nil {
				return fmt.Errorf("render frame %d: %w", frame.Index, err)
			}
			return nil
		})
	}
	return g.Wait()
}
