package line

import "github.com/huangsam/spendchart/schema"

// Frame maps data coordinates (day, amount) to surface pixels.
type Frame struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Padding     float64 `json:"padding"`
	GridLines   int     `json:"grid_lines"`
	MaxDay      int     `json:"max_day"`
	MaxAmount   int64   `json:"max_amount"`
	DayStep     float64 `json:"day_step"`      // Pixels per day
	AmountYStep float64 `json:"amount_y_step"` // Pixels per grid band
	AmountStep  float64 `json:"amount_step"`   // Amount per grid band
}

// Measure lays the plot area out on a width x height surface for the given bounds.
// A non-positive gridLines falls back to DefaultGridLines.
func Measure(width, height, padding float64, gridLines int, bounds schema.ChartBounds) Frame {
	if gridLines <= 0 {
		gridLines = DefaultGridLines
	}
	f := Frame{
		Width:       width,
		Height:      height,
		Padding:     padding,
		GridLines:   gridLines,
		MaxDay:      bounds.MaxDayOfMonth,
		MaxAmount:   bounds.MaxAmount,
		AmountYStep: (height - 2*padding) / float64(gridLines),
		AmountStep:  float64(bounds.MaxAmount) / float64(gridLines),
	}
	if bounds.MaxDayOfMonth > 0 {
		f.DayStep = (width - 2*padding) / float64(bounds.MaxDayOfMonth)
	}
	return f
}

// HeightFor returns the surface height the line chart wants for a given width.
func HeightFor(width float64) float64 {
	return width / 2
}

// X is the horizontal position of a day of month.
func (f Frame) X(day int) float64 {
	return f.Padding + float64(day-1)*f.DayStep
}

// Y is the vertical position of an amount. With no amount scale every value sits on the baseline.
func (f Frame) Y(amount int64) float64 {
	if f.AmountStep == 0 {
		return f.Baseline()
	}
	return f.Baseline() - float64(amount)*f.AmountYStep/f.AmountStep
}

// Baseline is the y of the chart bottom.
func (f Frame) Baseline() float64 {
	return f.Height - f.Padding
}

// GridY is the y of the i-th horizontal grid line, 0 being the top line.
func (f Frame) GridY(i int) float64 {
	return f.Padding + float64(i)*f.AmountYStep
}

// LastX is the x where every series path ends.
func (f Frame) LastX() float64 {
	return f.X(f.MaxDay)
}

// Threshold is the amount labelled next to the i-th grid line, 1 being the top band.
func (f Frame) Threshold(i int) int64 {
	return int64(float64(f.MaxAmount) - f.AmountStep*float64(i-1))
}
