package render

import (
	"math"
	"strings"

	"github.com/huangsam/spendchart/core/pie"
	"github.com/huangsam/spendchart/schema"
)

// PlanPie draws every sector revealed up to progress (clamped to [0, 1]).
// The origin is moved to the pie center first and restored at the end.
// Arcs are drawn before labels so no arc covers a label.
func PlanPie(sectors []schema.PieSector, geom pie.Geometry, style Style, progress float64) []schema.DrawCommand {
	if len(sectors) == 0 {
		return nil
	}
	progress = min(max(progress, 0), 1)

	cmds := make([]schema.DrawCommand, 0, 2+len(sectors)*4)
	cmds = append(cmds, translate(geom.Center.X, geom.Center.Y))

	bounds := geom.ArcBounds()
	for _, s := range sectors {
		cmds = append(cmds, schema.DrawCommand{
			Kind:       schema.ArcCmd,
			Bounds:     bounds,
			StartAngle: s.StartAngle,
			SweepAngle: s.SweepAngle * progress,
			Paint: &schema.Paint{
				Color:       s.Color,
				StrokeWidth: geom.StrokeWidth,
				Style:       schema.StrokeStyle,
				Cap:         schema.ButtCap,
			},
		})
	}

	for _, s := range sectors {
		cmds = append(cmds, planLabel(s, geom.LabelDistance(), style, progress)...)
	}

	return append(cmds, translate(-geom.Center.X, -geom.Center.Y))
}

// planLabel places a sector's label at the middle of its revealed sweep,
// one word per line, and moves the origin back afterwards.
func planLabel(s schema.PieSector, distance float64, style Style, progress float64) []schema.DrawCommand {
	words := strings.Fields(s.Label)
	if len(words) == 0 {
		return nil
	}
	rad := (s.StartAngle + s.SweepAngle/2*progress) * math.Pi / 180
	dx := math.Cos(rad) * distance
	dy := math.Sin(rad) * distance

	cmds := make([]schema.DrawCommand, 0, len(words)+2)
	cmds = append(cmds, translate(dx, dy))
	for i, w := range words {
		cmds = append(cmds, schema.DrawCommand{
			Kind:  schema.TextCmd,
			Text:  w,
			At:    schema.Point{X: 0, Y: style.TextSize * (float64(i) + 0.5)},
			Paint: style.textPaint(schema.AlignCenter),
		})
	}
	return append(cmds, translate(-dx, -dy))
}
