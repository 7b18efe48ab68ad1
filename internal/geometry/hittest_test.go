package geometry

import (
	"math"
	"testing"
)

func polar(center Point, deg, dist float64) Point {
	rad := deg * math.Pi / 180
	return Point{
		X: center.X + dist*math.Sin(rad),
		Y: center.Y - dist*math.Cos(rad),
	}
}

func TestPointerAngleScreenCoordinates(t *testing.T) {
	center := Point{X: 100, Y: 100}
	cases := []struct {
		p    Point
		want float64
	}{
		{Point{X: 100, Y: 50}, 0},    // up
		{Point{X: 150, Y: 100}, 90},  // right
		{Point{X: 100, Y: 150}, 180}, // down
		{Point{X: 50, Y: 100}, 270},  // left
	}
	for _, c := range cases {
		if got := PointerAngle(center, c.p); !AnglesEqual(got, c.want) {
			t.Fatalf("PointerAngle(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func testRings() []RingGeometry {
	return []RingGeometry{
		{Band: Band{Inner: 40, Thickness: 60}, Slice: FullCircleSlice(4), Count: 4},
		{Band: Band{Inner: 100, Thickness: 60}, Slice: SliceConfig{
			Start: 315, End: 315 + 90, ItemAngle: 30, Clockwise: true,
		}, Count: 3},
	}
}

func TestHitTestBandSelection(t *testing.T) {
	center := Point{}
	rings := testRings()
	hit, kind := HitTest(rings, 20, 1, center, polar(center, 0, 70))
	if kind != HitItem || hit.Level != 0 || hit.Index != 0 {
		t.Fatalf("expected ring 0 item 0, got %+v kind=%v", hit, kind)
	}
	hit, kind = HitTest(rings, 20, 1, center, polar(center, 350, 130))
	if kind != HitItem || hit.Level != 1 || hit.Index != 1 {
		t.Fatalf("expected ring 1 item 1, got %+v kind=%v", hit, kind)
	}
}

func TestHitTestCloseZone(t *testing.T) {
	center := Point{}
	_, kind := HitTest(testRings(), 20, 0, center, polar(center, 45, 10))
	if kind != HitCenter {
		t.Fatalf("expected close-zone signal, got %v", kind)
	}
}

func TestHitTestOvershootSticksToActiveRing(t *testing.T) {
	center := Point{}
	rings := testRings()
	hit, kind := HitTest(rings, 20, 1, center, polar(center, 330, 500))
	if kind != HitItem || hit.Level != 1 {
		t.Fatalf("overshoot should hover the active ring, got %+v kind=%v", hit, kind)
	}
	// Overshoot outside the active ring's slice is rejected.
	if _, kind = HitTest(rings, 20, 1, center, polar(center, 180, 500)); kind != HitNone {
		t.Fatalf("overshoot outside slice should miss, got %v", kind)
	}
	// A stale active level clamps to the outermost open ring.
	hit, kind = HitTest(rings, 20, 7, center, polar(center, 330, 500))
	if kind != HitItem || hit.Level != 1 {
		t.Fatalf("stale active level should clamp, got %+v kind=%v", hit, kind)
	}
}

func TestHitTestPartialSliceRejection(t *testing.T) {
	center := Point{}
	// Inside ring 1's band but outside its 315-45 slice.
	if _, kind := HitTest(testRings(), 20, 1, center, polar(center, 180, 130)); kind != HitNone {
		t.Fatalf("angle outside partial slice should miss, got %v", kind)
	}
}

func TestHitTestGapAndDegenerateRing(t *testing.T) {
	center := Point{}
	rings := []RingGeometry{
		{Band: Band{Inner: 40, Thickness: 20}, Slice: FullCircleSlice(2), Count: 2},
		{Band: Band{Inner: 100, Thickness: 20}, Slice: FullCircleSlice(2), Count: 2},
	}
	// Between the two bands.
	if _, kind := HitTest(rings, 10, 1, center, polar(center, 0, 80)); kind != HitNone {
		t.Fatalf("gap between bands should miss, got %v", kind)
	}
	// Zero items never resolve, never divide by zero.
	empty := []RingGeometry{{Band: Band{Inner: 40, Thickness: 20}, Slice: FullCircleSlice(0), Count: 0}}
	if _, kind := HitTest(empty, 10, 0, center, polar(center, 0, 50)); kind != HitNone {
		t.Fatalf("empty ring should miss, got %v", kind)
	}
	// No rings at all.
	if _, kind := HitTest(nil, 10, 0, center, polar(center, 0, 50)); kind != HitNone {
		t.Fatalf("no rings should miss, got %v", kind)
	}
}

func TestHitTestCounterClockwiseIndexing(t *testing.T) {
	center := Point{}
	rings := []RingGeometry{{
		Band: Band{Inner: 40, Thickness: 40},
		Slice: SliceConfig{
			Start: 90, End: 90 + 90, ItemAngle: 30, Clockwise: false,
		},
		Count: 3,
	}}
	// Counter-clockwise slices index backward from the end angle.
	hit, kind := HitTest(rings, 10, 0, center, polar(center, 165, 60))
	if kind != HitItem || hit.Index != 0 {
		t.Fatalf("165 should hit item 0, got %+v kind=%v", hit, kind)
	}
	hit, kind = HitTest(rings, 10, 0, center, polar(center, 105, 60))
	if kind != HitItem || hit.Index != 2 {
		t.Fatalf("105 should hit item 2, got %+v kind=%v", hit, kind)
	}
}
