// Package palette allocates chart colors from a shuffled, self-refilling palette.
package palette

import (
	"errors"
	"math/rand/v2"

	"github.com/huangsam/spendchart/schema"
)

// ErrEmptyPalette is returned when an allocator is built without any colors.
var ErrEmptyPalette = errors.New("palette must contain at least one color")

// Default is the built-in palette used when no palette is configured.
var Default = []schema.Color{
	mustParse("#4F46E5"),
	mustParse("#10B981"),
	mustParse("#F59E0B"),
	mustParse("#EF4444"),
	mustParse("#8B5CF6"),
	mustParse("#06B6D4"),
	mustParse("#EC4899"),
	mustParse("#84CC16"),
	mustParse("#F97316"),
	mustParse("#6366F1"),
}

// Allocator hands out palette colors in a random order. Within one pass over
// the palette no color repeats; once the pass is exhausted the arena is
// refilled with a fresh permutation of the base palette.
type Allocator struct {
	base   []schema.Color
	arena  []schema.Color
	cursor int
	rng    *rand.Rand
}

// NewAllocator returns an allocator over colors. A nil rng uses a randomly seeded source.
func NewAllocator(colors []schema.Color, rng *rand.Rand) (*Allocator, error) {
	if len(colors) == 0 {
		return nil, ErrEmptyPalette
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	a := &Allocator{
		base:  append([]schema.Color(nil), colors...),
		arena: make([]schema.Color, len(colors)),
		rng:   rng,
	}
	a.Reset()
	return a, nil
}

// NewSeeded returns an allocator whose order is fully determined by seed.
func NewSeeded(colors []schema.Color, seed uint64) (*Allocator, error) {
	return NewAllocator(colors, rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)))
}

// Next returns the next color, reshuffling when the current pass is used up.
func (a *Allocator) Next() schema.Color {
	if a.cursor >= len(a.arena) {
		a.Reset()
	}
	c := a.arena[a.cursor]
	a.cursor++
	return c
}

// Reset reshuffles the arena and rewinds the cursor.
func (a *Allocator) Reset() {
	copy(a.arena, a.base)
	a.rng.Shuffle(len(a.arena), func(i, j int) {
		a.arena[i], a.arena[j] = a.arena[j], a.arena[i]
	})
	a.cursor = 0
}

// Remaining returns how many colors are left before the next reshuffle.
func (a *Allocator) Remaining() int {
	return len(a.arena) - a.cursor
}

// Len returns the size of the base palette.
func (a *Allocator) Len() int {
	return len(a.base)
}

// ParseHex parses a list of hex color strings into a palette.
func ParseHex(values []string) ([]schema.Color, error) {
	colors := make([]schema.Color, 0, len(values))
	for _, v := range values {
		c, err := schema.ParseColor(v)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func mustParse(s string) schema.Color {
	c, err := schema.ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
