package core

import (
	"time"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/schema"
)

// fixedColors cycles through a fixed list so tests can assert colors.
type fixedColors struct {
	colors []schema.Color
	next   int
}

func (f *fixedColors) Next() schema.Color {
	c := f.colors[f.next%len(f.colors)]
	f.next++
	return c
}

var (
	red  = schema.Color{R: 0xFF, A: 0xFF}
	blue = schema.Color{B: 0xFF, A: 0xFF}
)

func day(d int) time.Time {
	return time.Date(2024, time.April, d, 9, 0, 0, 0, time.UTC)
}

// testRecords splits 400 into Food (300) then Transport (100).
func testRecords() []schema.PayloadRecord {
	return []schema.PayloadRecord{
		{ID: 1, Name: "Market", Category: "Food", Amount: 200, Time: day(1)},
		{ID: 2, Name: "Taxi", Category: "Transport", Amount: 100, Time: day(3)},
		{ID: 3, Name: "Bakery", Category: "Food", Amount: 100, Time: day(2)},
	}
}

// testConfig lays a 200px pie (ring 80..100 around (100, 100)) and a 200x100 line chart.
func testConfig() *contract.Config {
	return &contract.Config{
		Width:             200,
		TextColor:         schema.Black,
		GridColor:         schema.Gray,
		ItemTextSize:      contract.DefaultItemTextSize,
		StrokeWidth:       20,
		LineStrokeWidth:   contract.DefaultLineStrokeWidth,
		CornerRadius:      contract.DefaultCornerRadius,
		Padding:           10,
		GridLines:         contract.DefaultGridLines,
		AnimationDuration: 40 * time.Millisecond,
		AmountScale:       schema.CategoryTotalScale,
		Palette:           []schema.Color{red, blue},
		Seed:              42,
		HasSeed:           true,
		Location:          time.UTC,
		Progress:          1,
		Frames:            4,
	}
}
