package geometry

// Band is the radial extent of one ring.
type Band struct {
	Inner     float64
	Thickness float64
}

// Outer returns the band's outer radius.
func (b Band) Outer() float64 {
	return b.Inner + b.Thickness
}

// Contains reports whether a distance from center falls inside the band.
func (b Band) Contains(dist float64) bool {
	return dist >= b.Inner && dist <= b.Outer()
}

// RingGeometry is the hit-testing view of one open ring.
type RingGeometry struct {
	Band  Band
	Slice SliceConfig
	Count int
}

// HitKind classifies the result of a hit test.
type HitKind int

const (
	// HitNone means the pointer resolves to no item.
	HitNone HitKind = iota
	// HitItem means the pointer resolves to a ring item.
	HitItem
	// HitCenter means the pointer is inside the close zone; click
	// handling treats this as "dismiss", not "select".
	HitCenter
)

// Hit identifies an item by ring level and item index.
type Hit struct {
	Level int
	Index int
}

// HitTest maps a pointer position to a ring item. Rings are indexed by
// level, in stack order. A pointer beyond every ring's outer edge keeps
// hovering the active ring so interaction survives overshoot; a pointer
// inside the close zone yields HitCenter.
func HitTest(rings []RingGeometry, closeZone float64, activeLevel int, center, p Point) (Hit, HitKind) {
	dist := PointerDistance(center, p)
	if dist < closeZone {
		return Hit{}, HitCenter
	}
	if len(rings) == 0 {
		return Hit{}, HitNone
	}

	level := -1
	outermost := 0.0
	for i, ring := range rings {
		if ring.Band.Contains(dist) {
			level = i
			break
		}
		if edge := ring.Band.Outer(); edge > outermost {
			outermost = edge
		}
	}
	if level < 0 {
		if dist <= outermost {
			// Between bands or inside the innermost gap.
			return Hit{}, HitNone
		}
		level = activeLevel
		if level < 0 || level >= len(rings) {
			level = len(rings) - 1
		}
	}

	ring := rings[level]
	if ring.Count <= 0 {
		return Hit{}, HitNone
	}
	angle := PointerAngle(center, p)
	idx, ok := ring.Slice.IndexForAngle(angle, ring.Count)
	if !ok {
		return Hit{}, HitNone
	}
	return Hit{Level: level, Index: idx}, HitItem
}
