// Package pie computes the angular layout of the pie chart and maps pointer
// positions back to sectors.
package pie

import (
	"github.com/huangsam/spendchart/schema"
)

// ColorSource hands out one color per category.
type ColorSource interface {
	Next() schema.Color
}

// Compute partitions the full rotation among the aggregate's categories in
// first-seen order. Each sector's sweep is proportional to its category total
// and starts where the previous one ended, beginning at schema.InitialAngle.
// Categories with a non-positive total get no sector and no color.
// A zero sum yields no sectors.
func Compute(aggregate *schema.Aggregate, colors ColorSource) []schema.PieSector {
	if aggregate.IsEmpty() {
		return nil
	}

	var sum int64
	for _, c := range aggregate.Categories {
		if c.Total > 0 {
			sum += c.Total
		}
	}
	if sum <= 0 {
		return nil
	}

	sectors := make([]schema.PieSector, 0, len(aggregate.Categories))
	var running int64
	for _, c := range aggregate.Categories {
		if c.Total <= 0 {
			continue
		}
		// Derive both edges from the running integer total so seams line up exactly
		start := schema.InitialAngle + float64(running)/float64(sum)*schema.FullRotation
		running += c.Total
		end := schema.InitialAngle + float64(running)/float64(sum)*schema.FullRotation
		sectors = append(sectors, schema.PieSector{
			StartAngle: start,
			SweepAngle: end - start,
			Color:      colors.Next(),
			Label:      c.Category,
			Total:      c.Total,
			Records:    c.Records,
		})
	}
	return sectors
}

// Geometry is the measured shape of the pie on a surface.
type Geometry struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Center      schema.Point `json:"center"`
	Radius      float64      `json:"radius"`       // Outer radius
	StrokeWidth float64      `json:"stroke_width"` // Ring thickness, never above Radius
	ArcRadius   float64      `json:"arc_radius"`   // Radius of the stroke's center line
}

// Measure fits the pie ring into a width x height surface.
func Measure(width, height, strokeWidth float64) Geometry {
	radius := max(min(width, height)/2, 0)
	stroke := min(max(strokeWidth, 0), radius)
	return Geometry{
		Width:       width,
		Height:      height,
		Center:      schema.Point{X: width / 2, Y: height / 2},
		Radius:      radius,
		StrokeWidth: stroke,
		ArcRadius:   radius - stroke/2,
	}
}

// InnerRadius is the radius of the hollow center.
func (g Geometry) InnerRadius() float64 {
	return g.Radius - g.StrokeWidth
}

// LabelDistance is how far from the center sector labels are placed.
func (g Geometry) LabelDistance() float64 {
	return g.ArcRadius
}

// ArcBounds is the oval the sector arcs are drawn on, relative to the center.
func (g Geometry) ArcBounds() schema.Rect {
	return schema.Rect{Left: -g.ArcRadius, Top: -g.ArcRadius, Right: g.ArcRadius, Bottom: g.ArcRadius}
}

// TotalSweep returns the sum of all sector sweeps.
func TotalSweep(sectors []schema.PieSector) float64 {
	var total float64
	for _, s := range sectors {
		total += s.SweepAngle
	}
	return total
}
