package model

import (
	"math"
	"testing"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"vertical", Point{0, 0}, Point{0, 4}, 4},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// ============================================================================
// Polygon Tests
// ============================================================================

func TestPolygonIsFinite(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want bool
	}{
		{"empty", nil, true},
		{"rectangle", Rect(0, 0, 50, 20), true},
		{"positive infinity", Polygon{{0, 0}, {math.Inf(1), 0}}, false},
		{"negative infinity", Polygon{{0, math.Inf(-1)}}, false},
		{"NaN", Polygon{{math.NaN(), 0}, {1, 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want Point
	}{
		{"empty", nil, Point{0, 0}},
		{"single vertex", Polygon{{5, 7}}, Point{5, 7}},
		{"rectangle", Rect(0, 0, 50, 20), Point{25, 10}},
		{"offset rectangle", Rect(60, 0, 110, 20), Point{85, 10}},
		{"skewed quad", Polygon{{0, 0}, {10, 2}, {12, 12}, {2, 10}}, Point{6, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Center(tt.poly)
			if got != tt.want {
				t.Errorf("Center() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want Size
	}{
		{"empty", Polygon{}, Size{0, 0}},
		{"single vertex", Polygon{{5, 7}}, Size{0, 0}},
		{"rectangle", Rect(0, 0, 50, 20), Size{50, 20}},
		{"unordered vertices", Polygon{{10, 30}, {0, 0}, {10, 0}, {0, 30}}, Size{10, 30}},
		{"degenerate line", Polygon{{0, 5}, {40, 5}}, Size{40, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dimensions(tt.poly)
			if got != tt.want {
				t.Errorf("Dimensions() = %+v, want %+v", got, tt.want)
			}
			if got.Width < 0 || got.Height < 0 {
				t.Errorf("Dimensions() returned negative extent %+v", got)
			}
		})
	}
}

func TestSizeIsEmpty(t *testing.T) {
	if !(Size{0, 10}).IsEmpty() {
		t.Error("zero width should be empty")
	}
	if !(Size{10, 0}).IsEmpty() {
		t.Error("zero height should be empty")
	}
	if (Size{1, 1}).IsEmpty() {
		t.Error("1x1 should not be empty")
	}
	if (Size{4, 5}).Area() != 20 {
		t.Errorf("Area() = %v, want 20", (Size{4, 5}).Area())
	}
}

// ============================================================================
// BBox Tests
// ============================================================================

func TestNewBBoxFromPoints(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want   BBox
	}{
		{"normal", Point{10, 20}, Point{50, 70}, BBox{10, 20, 40, 50}},
		{"reversed", Point{50, 70}, Point{10, 20}, BBox{10, 20, 40, 50}},
		{"same point", Point{10, 10}, Point{10, 10}, BBox{10, 10, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBBoxFromPoints(tt.p1, tt.p2)
			if got != tt.want {
				t.Errorf("NewBBoxFromPoints() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBBoxEdges(t *testing.T) {
	bbox := NewBBox(10, 20, 100, 50)

	if bbox.Left() != 10 {
		t.Errorf("Left() = %v, want 10", bbox.Left())
	}
	if bbox.Right() != 110 {
		t.Errorf("Right() = %v, want 110", bbox.Right())
	}
	if bbox.Top() != 20 {
		t.Errorf("Top() = %v, want 20", bbox.Top())
	}
	if bbox.Bottom() != 70 {
		t.Errorf("Bottom() = %v, want 70", bbox.Bottom())
	}
}

func TestBoundsOfRoundTrip(t *testing.T) {
	box := NewBBox(3, 4, 10, 20)
	got := BoundsOf(box.Polygon())
	if got != box {
		t.Errorf("BoundsOf(Polygon()) = %+v, want %+v", got, box)
	}
	if BoundsOf(nil) != (BBox{}) {
		t.Error("BoundsOf(nil) should be the zero box")
	}
}

func TestBBoxContains(t *testing.T) {
	bbox := NewBBox(0, 0, 100, 100)

	tests := []struct {
		name     string
		point    Point
		expected bool
	}{
		{"inside", Point{50, 50}, true},
		{"on left edge", Point{0, 50}, true},
		{"on right edge", Point{100, 50}, true},
		{"outside left", Point{-1, 50}, false},
		{"outside right", Point{101, 50}, false},
		{"outside bottom", Point{50, 101}, false},
		{"outside top", Point{50, -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := bbox.Contains(tt.point)
			if result != tt.expected {
				t.Errorf("Contains(%+v) = %v, want %v", tt.point, result, tt.expected)
			}
		})
	}
}

func TestBBoxUnionAndScale(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(20, 5, 10, 10)

	u := a.Union(b)
	if u != (BBox{0, 0, 30, 15}) {
		t.Errorf("Union() = %+v, want {0 0 30 15}", u)
	}

	s := b.Scale(2)
	if s != (BBox{40, 10, 20, 20}) {
		t.Errorf("Scale(2) = %+v, want {40 10 20 20}", s)
	}

	if !(BBox{0, 0, 0, 5}).IsEmpty() {
		t.Error("zero-width box should be empty")
	}
	if a.Area() != 100 {
		t.Errorf("Area() = %v, want 100", a.Area())
	}
	if a.Center() != (Point{5, 5}) {
		t.Errorf("Center() = %+v, want {5 5}", a.Center())
	}
}
