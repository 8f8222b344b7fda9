package line

import (
	"testing"
	"time"

	"github.com/huangsam/spendchart/core/agg"
	"github.com/huangsam/spendchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedColors struct{ n int }

func (f *fixedColors) Next() schema.Color {
	f.n++
	return schema.Color{R: uint8(f.n), A: 0xFF}
}

func at(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 10, 0, 0, 0, time.UTC)
}

func TestCompute_Empty(t *testing.T) {
	colors := &fixedColors{}
	layout := Compute(agg.Aggregate(nil), colors, Options{})
	require.NotNil(t, layout)
	assert.Empty(t, layout.Series)
	assert.Zero(t, layout.Bounds)
	assert.Zero(t, colors.n)
}

func TestCompute_SingleRecordThirtyDayMonth(t *testing.T) {
	aggregate := agg.Aggregate([]schema.PayloadRecord{{Category: "A", Amount: 50, Time: at(time.June, 5)}})
	layout := Compute(aggregate, &fixedColors{}, Options{})

	assert.Equal(t, schema.ChartBounds{MaxAmount: 50, MaxDayOfMonth: 30}, layout.Bounds)
	require.Len(t, layout.Series, 1)
	require.Len(t, layout.Series[0].Points, 1)
	assert.Equal(t, 5, layout.Series[0].Points[0].Day)

	frame := Measure(700, 350, DefaultPadding, DefaultGridLines, layout.Bounds)
	assert.Equal(t, 20.0, frame.DayStep)
	assert.Equal(t, 62.5, frame.AmountYStep)
	assert.Equal(t, 12.5, frame.AmountStep)

	p := layout.Series[0].Points[0]
	assert.Equal(t, DefaultPadding+4*frame.DayStep, frame.X(p.Day))
	assert.Equal(t, 350-DefaultPadding-(50*frame.AmountYStep/12.5), frame.Y(p.Amount))
	assert.Equal(t, DefaultPadding, frame.Y(p.Amount), "the maximum amount reaches the top grid line")
}

func TestCompute_Scales(t *testing.T) {
	records := []schema.PayloadRecord{
		{Category: "A", Amount: 40, Time: at(time.March, 1)},
		{Category: "A", Amount: 30, Time: at(time.March, 2)},
		{Category: "B", Amount: 55, Time: at(time.March, 3)},
	}
	aggregate := agg.Aggregate(records)

	byTotal := Compute(aggregate, &fixedColors{}, Options{})
	assert.Equal(t, int64(70), byTotal.Bounds.MaxAmount)

	byRecord := Compute(aggregate, &fixedColors{}, Options{Scale: schema.RecordMaxScale})
	assert.Equal(t, int64(55), byRecord.Bounds.MaxAmount)
	assert.Equal(t, 31, byRecord.Bounds.MaxDayOfMonth)
}

func TestCompute_SeriesOrderAndColors(t *testing.T) {
	records := []schema.PayloadRecord{
		{Category: "rent", Amount: 900, Time: at(time.May, 1)},
		{Category: "food", Amount: 20, Time: at(time.May, 2)},
		{Category: "rent", Amount: 10, Time: at(time.May, 3)},
	}
	colors := &fixedColors{}
	layout := Compute(agg.Aggregate(records), colors, Options{})

	require.Len(t, layout.Series, 2)
	assert.Equal(t, "rent", layout.Series[0].Category)
	assert.Equal(t, "food", layout.Series[1].Category)
	assert.Equal(t, uint8(1), layout.Series[0].Color.R)
	assert.Equal(t, uint8(2), layout.Series[1].Color.R)
	assert.Equal(t, 2, colors.n)

	assert.Equal(t, []string{"food", "rent"}, []string{SortedSeries(layout)[0].Category, SortedSeries(layout)[1].Category})
	assert.Equal(t, "rent", layout.Series[0].Category, "SortedSeries leaves the layout untouched")
}

func TestCompute_PointOrder(t *testing.T) {
	records := []schema.PayloadRecord{
		{Category: "A", Amount: 1, Time: at(time.May, 20)},
		{Category: "A", Amount: 2, Time: at(time.May, 3)},
		{Category: "A", Amount: 3, Time: at(time.May, 11)},
	}
	aggregate := agg.Aggregate(records)

	asIs := Compute(aggregate, &fixedColors{}, Options{})
	assert.Equal(t, []int{20, 3, 11}, days(asIs.Series[0].Points))

	sorted := Compute(aggregate, &fixedColors{}, Options{SortPoints: true})
	assert.Equal(t, []int{3, 11, 20}, days(sorted.Series[0].Points))
}

func TestCompute_TimeZoneDecidesDay(t *testing.T) {
	// 23:30 UTC on Jan 31 is already Feb 1 in Tokyo
	ts := time.Date(2024, time.January, 31, 23, 30, 0, 0, time.UTC)
	aggregate := agg.Aggregate([]schema.PayloadRecord{{Category: "A", Amount: 5, Time: ts}})

	utc := Compute(aggregate, &fixedColors{}, Options{})
	assert.Equal(t, 31, utc.Series[0].Points[0].Day)
	assert.Equal(t, 31, utc.Bounds.MaxDayOfMonth)

	tokyo := time.FixedZone("JST", 9*60*60)
	local := Compute(aggregate, &fixedColors{}, Options{Location: tokyo})
	assert.Equal(t, 1, local.Series[0].Points[0].Day)
	assert.Equal(t, 29, local.Bounds.MaxDayOfMonth, "February 2024 is a leap month")
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		in   time.Time
		want int
	}{
		{time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), 29},
		{time.Date(2023, time.February, 10, 0, 0, 0, 0, time.UTC), 28},
		{time.Date(2023, time.April, 30, 0, 0, 0, 0, time.UTC), 30},
		{time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC), 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.in), tt.in.String())
	}
}

func days(points []schema.LinePoint) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.Day
	}
	return out
}
