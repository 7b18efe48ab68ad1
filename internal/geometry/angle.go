package geometry

import "math"

// Angles are measured in degrees, 0 pointing at the fixed reference
// direction ("up" in screen space), increasing clockwise.

const (
	// FullCircle is the angular span of a complete ring.
	FullCircle = 360.0

	// fullCircleTolerance absorbs floating-point drift when deciding
	// whether a span counts as a complete circle.
	fullCircleTolerance = 0.1

	// DefaultItemAngle is the per-item width used for partial child
	// slices when the parent node does not request one.
	DefaultItemAngle = 30.0

	angleEpsilon = 1e-6
)

// NormalizeAngle maps an angle into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, FullCircle)
	if deg < 0 {
		deg += FullCircle
	}
	if deg >= FullCircle {
		deg = 0
	}
	return deg
}

// ClockwiseDelta returns the clockwise distance from one angle to
// another, in [0, 360).
func ClockwiseDelta(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// AnglesEqual reports whether two angles denote the same direction,
// tolerating wrap-around and floating-point noise.
func AnglesEqual(a, b float64) bool {
	d := ClockwiseDelta(a, b)
	return d < angleEpsilon || FullCircle-d < angleEpsilon
}

// Point is a position in screen coordinates (y grows downward).
type Point struct {
	X float64
	Y float64
}

// PointerAngle returns the angle from center to p, clockwise from the
// "up" direction. The y-axis flip between math and screen coordinates
// is folded into the atan2 arguments.
func PointerAngle(center, p Point) float64 {
	dx := p.X - center.X
	dy := p.Y - center.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return NormalizeAngle(math.Atan2(dx, -dy) * 180 / math.Pi)
}

// PointerDistance returns the euclidean distance from center to p.
func PointerDistance(center, p Point) float64 {
	return math.Hypot(p.X-center.X, p.Y-center.Y)
}
