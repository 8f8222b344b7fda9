// Package line computes the per-category series and the Cartesian frame of
// the monthly line chart.
package line

import (
	"slices"
	"time"

	"github.com/huangsam/spendchart/core/agg"
	"github.com/huangsam/spendchart/schema"
)

// DefaultGridLines is the number of horizontal amount bands.
const DefaultGridLines = 4

// DefaultPadding is the plot inset on every side, in pixels.
const DefaultPadding = 50.0

// ColorSource hands out one color per series.
type ColorSource interface {
	Next() schema.Color
}

// Options tune how series and bounds are derived.
type Options struct {
	Scale      schema.AmountScale // Defaults to schema.CategoryTotalScale
	Location   *time.Location     // Zone used for day-of-month, defaults to UTC
	SortPoints bool               // Order each series by time instead of input order
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// Compute builds one series per category in first-seen order and the bounds
// that scale them. Points keep input order unless opts.SortPoints is set.
func Compute(aggregate *schema.Aggregate, colors ColorSource, opts Options) *schema.LineLayout {
	layout := &schema.LineLayout{}
	if aggregate.IsEmpty() {
		return layout
	}
	loc := opts.location()

	layout.Bounds = schema.ChartBounds{
		MaxAmount:     maxAmount(aggregate, opts.Scale),
		MaxDayOfMonth: DaysInMonth(aggregate.MinTime.In(loc)),
	}

	layout.Series = make([]schema.LineSeries, 0, len(aggregate.Categories))
	for _, c := range aggregate.Categories {
		records := c.Records
		if opts.SortPoints {
			records = agg.SortRecordsByTime(records)
		}
		points := make([]schema.LinePoint, len(records))
		for i, r := range records {
			points[i] = schema.LinePoint{Day: r.Time.In(loc).Day(), Amount: r.Amount, Time: r.Time}
		}
		layout.Series = append(layout.Series, schema.LineSeries{
			Category: c.Category,
			Color:    colors.Next(),
			Points:   points,
		})
	}
	return layout
}

func maxAmount(aggregate *schema.Aggregate, scale schema.AmountScale) int64 {
	if scale == schema.RecordMaxScale {
		return max(aggregate.MaxAmount, 0)
	}
	return max(agg.MaxCategoryTotal(aggregate), 0)
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	// Day 0 of the following month normalizes to the last day of this one
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// SortedSeries returns the series sorted by category name, leaving layout untouched.
func SortedSeries(layout *schema.LineLayout) []schema.LineSeries {
	series := slices.Clone(layout.Series)
	slices.SortFunc(series, func(a, b schema.LineSeries) int {
		switch {
		case a.Category < b.Category:
			return -1
		case a.Category > b.Category:
			return 1
		}
		return 0
	})
	return series
}
