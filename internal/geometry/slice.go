package geometry

// Layout expresses a node's preference for how its children occupy a ring.
type Layout int

const (
	LayoutPartialSlice Layout = iota
	LayoutFullCircle
)

// ArcMode positions a partial child slice relative to the parent item's
// occupied arc.
type ArcMode int

const (
	// ArcStartClockwise anchors the first child's edge at the parent
	// item's left edge, extending clockwise.
	ArcStartClockwise ArcMode = iota
	// ArcStartCounterClockwise anchors the last child's edge at the
	// parent item's right edge, extending counter-clockwise.
	ArcStartCounterClockwise
	// ArcCentered spreads the children symmetrically about the midpoint
	// of the parent item's arc.
	ArcCentered
)

// SliceConfig is the resolved angular geometry for one ring. Start is
// normalized into [0, 360); End is kept monotonic (End = Start + span),
// so a slice crossing the 0° boundary has End > 360. ItemAngles, when
// non-nil, carries non-uniform per-item widths and is only produced for
// ring 0.
type SliceConfig struct {
	Start      float64
	End        float64
	ItemAngle  float64
	ItemAngles []float64
	Mode       ArcMode
	Clockwise  bool
}

// Span returns the total angular extent of the slice.
func (s SliceConfig) Span() float64 {
	return s.End - s.Start
}

// IsFullCircle reports whether the slice covers a complete ring,
// tolerating floating-point drift.
func (s SliceConfig) IsFullCircle() bool {
	return s.Span() >= FullCircle-fullCircleTolerance
}

// ContainsAngle reports whether the angle falls within the slice.
func (s SliceConfig) ContainsAngle(deg float64) bool {
	if s.IsFullCircle() {
		return true
	}
	return ClockwiseDelta(s.Start, deg) <= s.Span()+angleEpsilon
}

// ItemArc returns the occupied arc of item i as a (left, right) edge
// pair. Edges are monotonic relative to Start (they may exceed 360 when
// the slice wraps); normalize before comparing against pointer angles.
func (s SliceConfig) ItemArc(i, count int) (left, right float64) {
	if count <= 0 || i < 0 || i >= count {
		return s.Start, s.Start
	}
	if s.ItemAngles != nil {
		left = s.Start
		for j := 0; j < i; j++ {
			left += s.ItemAngles[j]
		}
		return left, left + s.ItemAngles[i]
	}
	angle := s.itemAngle(count)
	if s.Clockwise {
		left = s.Start + float64(i)*angle
		return left, left + angle
	}
	// Counter-clockwise slices lay items backward from the end angle.
	right = s.End - float64(i)*angle
	return right - angle, right
}

// IndexForAngle converts a pointer angle into an item index, honoring
// the slice's direction and boundaries. The second result is false when
// the angle falls outside the slice or the ring is degenerate.
func (s SliceConfig) IndexForAngle(deg float64, count int) (int, bool) {
	if count <= 0 {
		return 0, false
	}
	if !s.ContainsAngle(deg) {
		return 0, false
	}
	rel := ClockwiseDelta(s.Start, deg)
	if rel > s.Span() {
		// Full-circle slices admit every angle; clamp the wrapped
		// remainder back onto the covered span.
		rel = s.Span()
	}
	if s.ItemAngles != nil {
		acc := 0.0
		for i, w := range s.ItemAngles {
			acc += w
			if rel < acc {
				return i, true
			}
		}
		return count - 1, true
	}
	angle := s.itemAngle(count)
	if angle <= 0 {
		return 0, false
	}
	var idx int
	if s.Clockwise {
		idx = int(rel / angle)
	} else {
		idx = int((s.Span() - rel) / angle)
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= count {
		idx = count - 1
	}
	return idx, true
}

func (s SliceConfig) itemAngle(count int) float64 {
	if s.ItemAngle > 0 {
		return s.ItemAngle
	}
	if count > 0 {
		return s.Span() / float64(count)
	}
	return 0
}

// FullCircleSlice lays count items around a complete ring, rotated so
// the first item is centered at the reference angle rather than
// starting its edge there.
func FullCircleSlice(count int) SliceConfig {
	if count <= 0 {
		return SliceConfig{Clockwise: true}
	}
	item := FullCircle / float64(count)
	start := NormalizeAngle(-item / 2)
	return SliceConfig{
		Start:     start,
		End:       start + FullCircle,
		ItemAngle: item,
		Clockwise: true,
	}
}

// WeightedFullCircleSlice lays items with non-uniform widths around a
// complete ring. Widths are scaled so they sum to 360; the first item is
// centered at the reference angle.
func WeightedFullCircleSlice(weights []float64) SliceConfig {
	if len(weights) == 0 {
		return SliceConfig{Clockwise: true}
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return FullCircleSlice(len(weights))
	}
	scaled := make([]float64, len(weights))
	for i, w := range weights {
		scaled[i] = w / total * FullCircle
	}
	start := NormalizeAngle(-scaled[0] / 2)
	return SliceConfig{
		Start:      start,
		End:        start + FullCircle,
		ItemAngles: scaled,
		Clockwise:  true,
	}
}

// ChildLayout carries the parent node's preferences for its children's
// slice. A zero ItemAngle selects the default width, except for
// single-child rings which inherit the parent item's own width.
type ChildLayout struct {
	Layout    Layout
	ItemAngle float64
	Mode      ArcMode
}

// ChildSlice resolves the slice for a child ring from the parent ring's
// geometry and the selected parent item. The parent's occupied arc is
// replayed from its own SliceConfig, so partial and wrapped parents
// resolve correctly.
func ChildSlice(parent SliceConfig, parentCount, selectedIdx int, pref ChildLayout, childCount int) SliceConfig {
	if childCount <= 0 {
		return SliceConfig{Clockwise: true}
	}
	left, right := parent.ItemArc(selectedIdx, parentCount)
	parentWidth := right - left
	mid := left + parentWidth/2

	item := pref.ItemAngle
	if item <= 0 {
		if childCount == 1 {
			item = parentWidth
		} else {
			item = DefaultItemAngle
		}
	}
	total := float64(childCount) * item

	// A partial slice wide enough to reach all the way around makes no
	// visual sense; escalate to a full circle anchored where the
	// partial slice would have begun.
	if pref.Layout == LayoutPartialSlice && total >= FullCircle-fullCircleTolerance {
		var anchor float64
		switch pref.Mode {
		case ArcStartCounterClockwise:
			anchor = right - total
		case ArcCentered:
			anchor = mid - total/2
		default:
			anchor = left
		}
		start := NormalizeAngle(anchor)
		return SliceConfig{
			Start:     start,
			End:       start + FullCircle,
			ItemAngle: FullCircle / float64(childCount),
			Mode:      pref.Mode,
			Clockwise: true,
		}
	}

	if pref.Layout == LayoutFullCircle {
		// Explicit full-circle children follow the ring 0 convention,
		// centered on the parent item's midpoint.
		per := FullCircle / float64(childCount)
		start := NormalizeAngle(mid - per/2)
		return SliceConfig{
			Start:     start,
			End:       start + FullCircle,
			ItemAngle: per,
			Mode:      pref.Mode,
			Clockwise: true,
		}
	}

	switch pref.Mode {
	case ArcStartCounterClockwise:
		start := NormalizeAngle(right - total)
		return SliceConfig{
			Start:     start,
			End:       start + total,
			ItemAngle: item,
			Mode:      pref.Mode,
			Clockwise: false,
		}
	case ArcCentered:
		start := NormalizeAngle(mid - total/2)
		return SliceConfig{
			Start:     start,
			End:       start + total,
			ItemAngle: item,
			Mode:      pref.Mode,
			Clockwise: true,
		}
	default:
		start := NormalizeAngle(left)
		return SliceConfig{
			Start:     start,
			End:       start + total,
			ItemAngle: item,
			Mode:      pref.Mode,
			Clockwise: true,
		}
	}
}
