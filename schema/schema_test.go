package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregateIsEmpty(t *testing.T) {
	var nilAgg *Aggregate
	assert.True(t, nilAgg.IsEmpty())
	assert.True(t, (&Aggregate{}).IsEmpty())
	assert.False(t, (&Aggregate{Categories: []CategoryAggregate{{Category: "Food"}}}).IsEmpty())
}

func TestAggregateRecordCount(t *testing.T) {
	var nilAgg *Aggregate
	assert.Equal(t, 0, nilAgg.RecordCount())

	now := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	agg := &Aggregate{Categories: []CategoryAggregate{
		{Category: "Food", Records: []PayloadRecord{{Amount: 1, Time: now}, {Amount: 2, Time: now}}},
		{Category: "Transport", Records: []PayloadRecord{{Amount: 3, Time: now}}},
	}}
	assert.Equal(t, 3, agg.RecordCount())
}

func TestPieSectorEndAngle(t *testing.T) {
	s := PieSector{StartAngle: 90, SweepAngle: 45.5}
	assert.Equal(t, 135.5, s.EndAngle())
}

func TestRect(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Right: 110, Bottom: 70}
	assert.Equal(t, 100.0, r.Width())
	assert.Equal(t, 50.0, r.Height())
	assert.Equal(t, Point{X: 60, Y: 45}, r.Center())
}

func TestPathBuilders(t *testing.T) {
	var p Path
	p.MoveTo(1, 2)
	p.LineTo(3, 4)
	assert.Equal(t, []PathSegment{
		{Op: MoveTo, Point: Point{X: 1, Y: 2}},
		{Op: LineTo, Point: Point{X: 3, Y: 4}},
	}, p.Segments)
}
