package core

import (
	"context"
	"testing"
	"time"

	"github.com/huangsam/spendchart/core/agg"
	"github.com/huangsam/spendchart/core/anim"
	"github.com/huangsam/spendchart/core/render"
	"github.com/huangsam/spendchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPie(t *testing.T, opts ...anim.Option) *PieChart {
	t.Helper()
	c := NewPieChart(render.DefaultStyle(), 20, opts...)
	c.SetData(agg.Aggregate(testRecords()), &fixedColors{colors: []schema.Color{red, blue}})
	c.ComputeLayout(200, 200)
	return c
}

func TestPieChart_Data(t *testing.T) {
	c := newTestPie(t)

	sectors := c.Sectors()
	require.Len(t, sectors, 2)
	assert.Equal(t, "Food", sectors[0].Label)
	assert.Equal(t, red, sectors[0].Color)
	assert.InDelta(t, 270.0, sectors[0].SweepAngle, 1e-9)
	assert.Equal(t, blue, sectors[1].Color)
	assert.InDelta(t, 360.0, sectors[1].EndAngle(), 1e-9)

	geom := c.Geometry()
	assert.Equal(t, schema.Point{X: 100, Y: 100}, geom.Center)
	assert.Equal(t, 100.0, geom.Radius)
	assert.Equal(t, 20.0, geom.StrokeWidth)
}

func TestPieChart_Tap(t *testing.T) {
	c := newTestPie(t)

	var selected []schema.PayloadRecord
	calls := 0
	c.SetOnSectorSelected(func(records []schema.PayloadRecord) {
		selected = records
		calls++
	})

	tests := []struct {
		name     string
		x, y     float64
		hit      bool
		category string
	}{
		{"bottom of ring", 100, 190, true, "Food"},
		{"seam at 270 belongs to the earlier sector", 100, 10, true, "Food"},
		{"angle zero resolves to the last sector", 190, 100, true, "Transport"},
		{"center", 100, 100, false, ""},
		{"hole", 100, 150, false, ""},
		{"outside", 0, 0, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, calls = nil, 0
			assert.Equal(t, tt.hit, c.Tap(tt.x, tt.y))
			if !tt.hit {
				assert.Zero(t, calls, "listener must not fire on a miss")
				return
			}
			assert.Equal(t, 1, calls)
			require.NotEmpty(t, selected)
			assert.Equal(t, tt.category, selected[0].Category)
		})
	}

	t.Run("no listener", func(t *testing.T) {
		c.SetOnSectorSelected(nil)
		assert.True(t, c.Tap(100, 190))
	})
}

func TestPieChart_Tap_Empty(t *testing.T) {
	c := NewPieChart(render.DefaultStyle(), 20)
	c.ComputeLayout(200, 200)
	assert.False(t, c.Tap(100, 190))
}

func TestPieChart_Progress(t *testing.T) {
	c := newTestPie(t)
	assert.Equal(t, 1.0, c.Progress(), "a new pie is fully revealed")
	full := c.Plan()
	assert.NotEmpty(t, full)

	c.SetProgressFraction(0.5)
	assert.Equal(t, 0.5, c.Progress())

	c.SetProgressFraction(0)
	assert.Equal(t, 0.0, c.Progress())
}

func TestPieChart_SetProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("zero duration jumps to the end", func(t *testing.T) {
		c := newTestPie(t)
		done := c.SetProgress(ctx, 0, 180, 0)
		<-done
		assert.Equal(t, 0.5, c.Progress())
	})

	t.Run("runs to completion", func(t *testing.T) {
		var frames []float64
		c := newTestPie(t,
			anim.WithFrameInterval(2*time.Millisecond),
			anim.WithOnFrame(func(p float64) { frames = append(frames, p) }))

		select {
		case <-c.SetProgress(ctx, 0, 360, 30*time.Millisecond):
		case <-time.After(2 * time.Second):
			t.Fatal("animation did not finish")
		}
		assert.Equal(t, 1.0, c.Progress())
		require.NotEmpty(t, frames)
		assert.Equal(t, 0.0, frames[0])
		assert.Equal(t, 1.0, frames[len(frames)-1])
	})

	t.Run("stop leaves progress in place", func(t *testing.T) {
		c := newTestPie(t, anim.WithFrameInterval(time.Millisecond))
		done := c.SetProgress(ctx, 0, 360, time.Hour)
		c.StopAnimation()
		<-done
		assert.Less(t, c.Progress(), 1.0)
	})

	t.Run("cancelled context ends the run", func(t *testing.T) {
		c := newTestPie(t)
		cctx, cancel := context.WithCancel(ctx)
		done := c.SetProgress(cctx, 0, 360, time.Hour)
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("animation ignored cancellation")
		}
	})
}

func TestLineChart(t *testing.T) {
	c := NewLineChart(render.DefaultStyle(), 10, 4, lineOptions(testConfig()))
	assert.NotNil(t, c.Layout(), "an empty chart has an empty layout")

	frame := c.ComputeLayout(200, 100)
	assert.Equal(t, int64(0), frame.MaxAmount)

	// Binding data after measuring re-measures at the same size
	c.SetData(agg.Aggregate(testRecords()), &fixedColors{colors: []schema.Color{red, blue}})
	assert.Equal(t, int64(300), c.Frame().MaxAmount)
	assert.Equal(t, 30, c.Frame().MaxDay)
	assert.Equal(t, 200.0, c.Frame().Width)

	layout := c.Layout()
	require.Len(t, layout.Series, 2)
	assert.Equal(t, []int{1, 2}, []int{layout.Series[0].Points[0].Day, layout.Series[0].Points[1].Day})
	assert.NotEmpty(t, c.Plan())

	c.SetLayout(nil)
	assert.Empty(t, c.Layout().Series)
}
