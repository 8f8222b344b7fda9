package render

import (
	"strconv"

	"github.com/huangsam/spendchart/core/line"
	"github.com/huangsam/spendchart/schema"
)

// PlanLine draws the grid, the axis labels and one rounded path per series.
// A layout without series plans nothing.
func PlanLine(layout *schema.LineLayout, frame line.Frame, style Style) []schema.DrawCommand {
	if layout == nil || len(layout.Series) == 0 {
		return nil
	}
	cmds := planGrid(frame, style)
	cmds = append(cmds, planAxisLabels(frame, style)...)
	for _, s := range layout.Series {
		cmds = append(cmds, planSeries(s, frame, style))
	}
	return cmds
}

func planGrid(f line.Frame, style Style) []schema.DrawCommand {
	paint := &schema.Paint{
		Color:       style.GridColor,
		StrokeWidth: style.GridStrokeWidth,
		Style:       schema.StrokeStyle,
		Cap:         schema.ButtCap,
	}
	left, right := f.Padding, f.Width-f.Padding
	top, bottom := f.Padding, f.Baseline()

	var cmds []schema.DrawCommand
	hline := func(y float64) {
		cmds = append(cmds, schema.DrawCommand{Kind: schema.LineCmd, From: schema.Point{X: left, Y: y}, To: schema.Point{X: right, Y: y}, Paint: paint})
	}
	vline := func(x float64) {
		cmds = append(cmds, schema.DrawCommand{Kind: schema.LineCmd, From: schema.Point{X: x, Y: top}, To: schema.Point{X: x, Y: bottom}, Paint: paint})
	}

	hline(top)
	for i := 1; i <= f.GridLines; i++ {
		hline(f.GridY(i))
	}
	vline(left)
	// Odd days get a marker; day 1 coincides with the left axis
	for day := 3; day <= f.MaxDay; day += 2 {
		vline(f.X(day))
	}
	return cmds
}

func planAxisLabels(f line.Frame, style Style) []schema.DrawCommand {
	var cmds []schema.DrawCommand

	dayY := f.GridY(f.GridLines) + f.Padding/2 + 10
	dayPaint := style.textPaint(schema.AlignCenter)
	for day := 1; day <= f.MaxDay; day += 2 {
		cmds = append(cmds, schema.DrawCommand{
			Kind:  schema.TextCmd,
			Text:  strconv.Itoa(day),
			At:    schema.Point{X: f.X(day), Y: dayY},
			Paint: dayPaint,
		})
	}

	amountPaint := style.textPaint(schema.AlignRight)
	for i := 1; i <= f.GridLines; i++ {
		cmds = append(cmds, schema.DrawCommand{
			Kind:  schema.TextCmd,
			Text:  strconv.FormatInt(f.Threshold(i), 10) + style.CurrencySuffix,
			At:    schema.Point{X: f.Width - f.Padding, Y: f.GridY(i-1) + f.Padding/1.5},
			Paint: amountPaint,
		})
	}
	return cmds
}

// planSeries pins both ends of the path to the baseline so each category reads as a silhouette.
func planSeries(s schema.LineSeries, f line.Frame, style Style) schema.DrawCommand {
	path := &schema.Path{}
	path.MoveTo(f.Padding, f.Baseline())
	for _, p := range s.Points {
		path.LineTo(f.X(p.Day), f.Y(p.Amount))
	}
	path.LineTo(f.LastX(), f.Baseline())

	return schema.DrawCommand{
		Kind: schema.PathCmd,
		Path: path,
		Paint: &schema.Paint{
			Color:        s.Color,
			StrokeWidth:  style.LineStrokeWidth,
			Style:        schema.StrokeStyle,
			Cap:          schema.RoundCap,
			Join:         schema.RoundJoin,
			CornerRadius: style.CornerRadius,
		},
	}
}
