// Package surface implements the chart drawing surface on a raster canvas.
package surface

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/huangsam/spendchart/core/render"
	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/logger"
	"github.com/huangsam/spendchart/schema"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Canvas is an in-memory RGBA surface.
type Canvas struct {
	dc    *gg.Context
	faces map[faceKey]font.Face
}

var _ contract.Surface = &Canvas{} // Compile-time check

type faceKey struct {
	typeface string
	size     float64
}

// New returns a canvas of the given size filled with background.
func New(width, height int, background schema.Color) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(background)
	dc.Clear()
	return &Canvas{dc: dc, faces: make(map[faceKey]font.Face)}
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Translate implements contract.Surface.
func (c *Canvas) Translate(dx, dy float64) {
	c.dc.Translate(dx, dy)
}

// DrawLine implements contract.Surface.
func (c *Canvas) DrawLine(from, to schema.Point, paint *schema.Paint) {
	c.applyStroke(paint)
	c.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	c.finish(paint)
}

// DrawArc implements contract.Surface. Angles grow clockwise on screen, as they do in gg.
func (c *Canvas) DrawArc(bounds schema.Rect, startAngle, sweepAngle float64, paint *schema.Paint) {
	if sweepAngle == 0 {
		return
	}
	c.applyStroke(paint)
	center := bounds.Center()
	c.dc.NewSubPath()
	c.dc.DrawEllipticalArc(center.X, center.Y, bounds.Width()/2, bounds.Height()/2,
		gg.Radians(startAngle), gg.Radians(startAngle+sweepAngle))
	c.finish(paint)
}

// DrawPath implements contract.Surface. Joins are rounded by the paint's corner radius.
func (c *Canvas) DrawPath(path *schema.Path, paint *schema.Paint) {
	if path == nil || len(path.Segments) == 0 {
		return
	}
	c.applyStroke(paint)
	for _, sub := range splitSubPaths(path.Segments) {
		traceRounded(c.dc, sub, paint.CornerRadius)
	}
	c.finish(paint)
}

// DrawText implements contract.Surface. y is the text baseline.
func (c *Canvas) DrawText(text string, x, y float64, paint *schema.Paint) {
	c.dc.SetFontFace(c.face(paint.Typeface, paint.TextSize))
	c.dc.SetColor(paint.Color)
	ax := 0.0
	switch paint.TextAlign {
	case schema.AlignCenter:
		ax = 0.5
	case schema.AlignRight:
		ax = 1
	}
	c.dc.DrawStringAnchored(text, x, y, ax, 0)
}

func (c *Canvas) applyStroke(paint *schema.Paint) {
	c.dc.SetColor(paint.Color)
	c.dc.SetLineWidth(max(paint.StrokeWidth, 1))
	switch paint.Cap {
	case schema.RoundCap:
		c.dc.SetLineCapRound()
	case schema.SquareCap:
		c.dc.SetLineCapSquare()
	default:
		c.dc.SetLineCapButt()
	}
	switch paint.Join {
	case schema.BevelJoin:
		c.dc.SetLineJoinBevel()
	default:
		c.dc.SetLineJoinRound()
	}
}

func (c *Canvas) finish(paint *schema.Paint) {
	if paint.Style == schema.FillStyle {
		c.dc.Fill()
		return
	}
	c.dc.Stroke()
}

// face returns a font face for typeface at size, loading it once.
// An empty or unreadable typeface falls back to the embedded Go font.
func (c *Canvas) face(typeface string, size float64) font.Face {
	if size <= 0 {
		size = 14
	}
	key := faceKey{typeface, size}
	if f, ok := c.faces[key]; ok {
		return f
	}
	var f font.Face
	if typeface != "" {
		loaded, err := gg.LoadFontFace(typeface, size)
		if err != nil {
			logger.Warn("cannot load typeface, using default", zap.String("typeface", typeface), zap.Error(err))
		} else {
			f = loaded
		}
	}
	if f == nil {
		f = defaultFace(size)
	}
	c.faces[key] = f
	return f
}

func defaultFace(size float64) font.Face {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	return f
}

func splitSubPaths(segs []schema.PathSegment) [][]schema.Point {
	var subs [][]schema.Point
	for _, s := range segs {
		if s.Op == schema.MoveTo || len(subs) == 0 {
			subs = append(subs, nil)
		}
		subs[len(subs)-1] = append(subs[len(subs)-1], s.Point)
	}
	return subs
}

// traceRounded adds a polyline whose interior corners are replaced by
// quadratic curves cut at most radius away from each vertex.
func traceRounded(dc *gg.Context, pts []schema.Point, radius float64) {
	dc.NewSubPath()
	dc.MoveTo(pts[0].X, pts[0].Y)
	if radius <= 0 || len(pts) < 3 {
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		return
	}
	for i := 1; i < len(pts)-1; i++ {
		prev, cur, next := pts[i-1], pts[i], pts[i+1]
		in := towards(cur, prev, min(radius, dist(prev, cur)/2))
		out := towards(cur, next, min(radius, dist(cur, next)/2))
		dc.LineTo(in.X, in.Y)
		dc.QuadraticTo(cur.X, cur.Y, out.X, out.Y)
	}
	last := pts[len(pts)-1]
	dc.LineTo(last.X, last.Y)
}

func dist(a, b schema.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// towards returns the point d away from a in the direction of b.
func towards(a, b schema.Point, d float64) schema.Point {
	l := dist(a, b)
	if l == 0 {
		return a
	}
	return schema.Point{X: a.X + (b.X-a.X)/l*d, Y: a.Y + (b.Y-a.Y)/l*d}
}

// Render replays cmds on a fresh white canvas.
func Render(cmds []schema.DrawCommand, width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	canvas := New(width, height, schema.White)
	if err := render.Replay(cmds, canvas); err != nil {
		return nil, err
	}
	return canvas, nil
}

// WritePNG renders cmds and encodes the result as PNG.
func WritePNG(w io.Writer, cmds []schema.DrawCommand, width, height int) error {
	canvas, err := Render(cmds, width, height)
	if err != nil {
		return err
	}
	return canvas.EncodePNG(w)
}

// SavePNG renders cmds into a PNG file at path.
func SavePNG(path string, cmds []schema.DrawCommand, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNG(f, cmds, width, height); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
