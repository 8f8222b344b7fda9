// Package agg groups payload records by category and derives the extrema
// used by the pie and line layout engines.
package agg

import (
	"slices"

	"github.com/huangsam/spendchart/schema"
)

// Aggregate groups records by category in first-seen order and computes
// totals and time/amount extrema in a single pass.
// Empty input yields an aggregate with no categories and zero extrema.
func Aggregate(records []schema.PayloadRecord) *schema.Aggregate {
	out := &schema.Aggregate{}
	if len(records) == 0 {
		return out
	}

	// Position of each category in out.Categories
	index := make(map[string]int)

	for i, r := range records {
		pos, ok := index[r.Category]
		if !ok {
			pos = len(out.Categories)
			index[r.Category] = pos
			out.Categories = append(out.Categories, schema.CategoryAggregate{Category: r.Category})
		}
		cat := &out.Categories[pos]
		cat.Total += r.Amount
		cat.Records = append(cat.Records, r)
		out.SumAmount += r.Amount

		if i == 0 {
			out.MinTime, out.MaxTime = r.Time, r.Time
			out.MinAmount, out.MaxAmount = r.Amount, r.Amount
			continue
		}
		if r.Time.Before(out.MinTime) {
			out.MinTime = r.Time
		}
		if r.Time.After(out.MaxTime) {
			out.MaxTime = r.Time
		}
		out.MinAmount = min(out.MinAmount, r.Amount)
		out.MaxAmount = max(out.MaxAmount, r.Amount)
	}

	return out
}

// MaxCategoryTotal returns the largest single-category total, or 0 when empty.
func MaxCategoryTotal(a *schema.Aggregate) int64 {
	if a.IsEmpty() {
		return 0
	}
	best := a.Categories[0].Total
	for _, c := range a.Categories[1:] {
		best = max(best, c.Total)
	}
	return best
}

// SortRecordsByTime returns a copy of records ordered by time.
// Records with equal times keep their relative input order.
func SortRecordsByTime(records []schema.PayloadRecord) []schema.PayloadRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b schema.PayloadRecord) int {
		return a.Time.Compare(b.Time)
	})
	return sorted
}

// Categories returns the category names in first-seen order.
func Categories(a *schema.Aggregate) []string {
	if a.IsEmpty() {
		return nil
	}
	names := make([]string, len(a.Categories))
	for i, c := range a.Categories {
		names[i] = c.Category
	}
	return names
}
