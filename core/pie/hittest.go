package pie

import (
	"math"

	"github.com/huangsam/spendchart/schema"
)

// TouchAngle converts a pointer position into a clockwise angle in [0, 360)
// measured from the 3 o'clock axis in Y-down surface space, the same origin
// the layout uses. It reports false when the pointer is off the ring.
func TouchAngle(geom Geometry, x, y float64) (float64, bool) {
	dx := x - geom.Center.X
	dy := y - geom.Center.Y
	d := math.Hypot(dx, dy)
	if d < geom.InnerRadius() || d > geom.Radius || d == 0 {
		return 0, false
	}

	// Angle between the pointer vector and the reference vector (1, 0)
	angle := math.Acos(max(-1, min(1, dx/d))) * 180 / math.Pi
	if y < geom.Center.Y {
		angle = schema.FullRotation - angle
	}
	if angle >= schema.FullRotation {
		angle -= schema.FullRotation
	}
	return angle, true
}

// SectorAt returns the index of the first sector whose range (start, start+sweep]
// contains angle. A seam belongs to the end of the earlier sector, so an
// angle of exactly 0 resolves to the sector ending at the full rotation.
func SectorAt(sectors []schema.PieSector, angle float64) (int, bool) {
	if i, ok := scan(sectors, angle); ok {
		return i, true
	}
	if angle == 0 {
		return scan(sectors, schema.FullRotation)
	}
	return -1, false
}

func scan(sectors []schema.PieSector, angle float64) (int, bool) {
	for i, s := range sectors {
		if angle > s.StartAngle && angle <= s.EndAngle() {
			return i, true
		}
	}
	return -1, false
}

// HitTest maps a pointer position to the sector beneath it.
func HitTest(geom Geometry, sectors []schema.PieSector, x, y float64) (int, bool) {
	angle, ok := TouchAngle(geom, x, y)
	if !ok {
		return -1, false
	}
	return SectorAt(sectors, angle)
}
