package surface

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/huangsam/spendchart/core/pie"
	"github.com/huangsam/spendchart/core/render"
	"github.com/huangsam/spendchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func red() schema.Color { return schema.Color{R: 0xFF, A: 0xFF} }

func TestNewFillsBackground(t *testing.T) {
	c := New(10, 10, schema.White)
	r, g, b, a := c.Image().At(5, 5).RGBA()
	assert.Equal(t, []uint32{0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF}, []uint32{r, g, b, a})
}

func TestDrawLinePaintsPixels(t *testing.T) {
	c := New(20, 20, schema.White)
	c.DrawLine(schema.Point{X: 0, Y: 10}, schema.Point{X: 20, Y: 10},
		&schema.Paint{Color: red(), StrokeWidth: 4, Style: schema.StrokeStyle})
	r, g, _, _ := c.Image().At(10, 10).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0), g)
}

func TestTranslateShiftsDrawing(t *testing.T) {
	c := New(40, 40, schema.White)
	c.Translate(20, 0)
	c.DrawLine(schema.Point{X: 0, Y: 0}, schema.Point{X: 0, Y: 40},
		&schema.Paint{Color: red(), StrokeWidth: 4})
	_, g, _, _ := c.Image().At(20, 20).RGBA()
	assert.Equal(t, uint32(0), g, "translated line should hit x=20")
	_, g, _, _ = c.Image().At(2, 20).RGBA()
	assert.Equal(t, uint32(0xFFFF), g, "origin column should stay blank")
}

func TestDrawArcZeroSweepIsNoop(t *testing.T) {
	c := New(20, 20, schema.White)
	before := c.Image().At(10, 10)
	c.DrawArc(schema.Rect{Left: 0, Top: 0, Right: 20, Bottom: 20}, 0, 0, &schema.Paint{Color: red(), StrokeWidth: 20})
	assert.Equal(t, before, c.Image().At(10, 10))
}

func TestDrawPathWithoutSegmentsIsNoop(t *testing.T) {
	c := New(10, 10, schema.White)
	assert.NotPanics(t, func() {
		c.DrawPath(nil, &schema.Paint{Color: red()})
		c.DrawPath(&schema.Path{}, &schema.Paint{Color: red()})
	})
}

func TestDrawTextUsesDefaultFace(t *testing.T) {
	c := New(100, 40, schema.White)
	assert.NotPanics(t, func() {
		c.DrawText("Food", 50, 30, &schema.Paint{Color: schema.Black, TextSize: 14, TextAlign: schema.AlignCenter})
		c.DrawText("Food", 50, 30, &schema.Paint{Color: schema.Black, TextSize: 14, Typeface: "/nonexistent.ttf"})
	})
	assert.Len(t, c.faces, 2)
}

func TestSplitSubPaths(t *testing.T) {
	var p schema.Path
	p.MoveTo(0, 0)
	p.LineTo(1, 1)
	p.MoveTo(5, 5)
	p.LineTo(6, 6)
	p.LineTo(7, 7)
	subs := splitSubPaths(p.Segments)
	require.Len(t, subs, 2)
	assert.Len(t, subs[0], 2)
	assert.Len(t, subs[1], 3)
}

func TestTowards(t *testing.T) {
	a := schema.Point{X: 0, Y: 0}
	b := schema.Point{X: 10, Y: 0}
	assert.Equal(t, schema.Point{X: 3, Y: 0}, towards(a, b, 3))
	assert.Equal(t, a, towards(a, a, 3))
}

func TestTraceRoundedDoesNotPanic(t *testing.T) {
	dc := gg.NewContext(10, 10)
	assert.NotPanics(t, func() {
		traceRounded(dc, []schema.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}}, 40)
		traceRounded(dc, []schema.Point{{X: 0, Y: 0}}, 40)
	})
}

func TestRenderRejectsBadSize(t *testing.T) {
	_, err := Render(nil, 0, 10)
	assert.Error(t, err)
}

func TestRenderPropagatesReplayError(t *testing.T) {
	_, err := Render([]schema.DrawCommand{{Kind: schema.LineCmd}}, 10, 10)
	assert.ErrorIs(t, err, render.ErrMissingPaint)
}

func TestWritePNGPieChart(t *testing.T) {
	sectors := []schema.PieSector{
		{StartAngle: 0, SweepAngle: 270, Color: red(), Label: "Food"},
		{StartAngle: 270, SweepAngle: 90, Color: schema.Black, Label: "Rent"},
	}
	geom := pie.Measure(200, 200, 40)
	cmds := render.PlanPie(sectors, geom, render.DefaultStyle(), 1)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, cmds, 200, 200))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	// Point on the ring at 45 degrees lies in the first sector
	x := geom.Center.X + geom.ArcRadius*0.7071
	y := geom.Center.Y + geom.ArcRadius*0.7071
	r, g, _, _ := img.At(int(x), int(y)).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0), g)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, SavePNG(path, nil, 16, 16))
	assert.FileExists(t, path)

	err := SavePNG(filepath.Join(t.TempDir(), "missing", "chart.png"), nil, 16, 16)
	assert.Error(t, err)
}
