package model

import "math"

// Point represents a 2D point in image pixel space (Y grows downward)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsFinite reports whether both coordinates are finite numbers
func (p Point) IsFinite() bool {
	return !math.IsInf(p.X, 0) && !math.IsNaN(p.X) &&
		!math.IsInf(p.Y, 0) && !math.IsNaN(p.Y)
}

// Polygon is an ordered list of vertices, usually the four corners of an
// OCR bounding quadrilateral.
type Polygon []Point

// Rect builds the axis-aligned polygon spanning (x0,y0)-(x1,y1), listing
// vertices clockwise from the top-left corner.
func Rect(x0, y0, x1, y1 float64) Polygon {
	return Polygon{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// IsFinite reports whether every vertex has finite coordinates.
// An empty polygon is finite.
func (poly Polygon) IsFinite() bool {
	for _, p := range poly {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

// Center returns the arithmetic mean of the polygon's vertices.
// An empty polygon yields the origin.
func Center(poly Polygon) Point {
	if len(poly) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range poly {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(poly))
	return Point{X: sx / n, Y: sy / n}
}

// Dimensions returns the extent of the polygon's axis-aligned bounding box.
// An empty polygon yields a zero size.
func Dimensions(poly Polygon) Size {
	b := BoundsOf(poly)
	return Size{Width: b.Width, Height: b.Height}
}

// Size is a width/height pair
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns Width*Height
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// IsEmpty returns true if either side is zero or negative
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// BBox represents an axis-aligned bounding box in image coordinates
type BBox struct {
	X      float64 `json:"x"` // Left
	Y      float64 `json:"y"` // Top (image coordinate system)
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints creates a bounding box from two points
func NewBBoxFromPoints(p1, p2 Point) BBox {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	width := math.Abs(p2.X - p1.X)
	height := math.Abs(p2.Y - p1.Y)
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// BoundsOf returns the axis-aligned bounding box of a polygon.
// An empty polygon yields the zero box.
func BoundsOf(poly Polygon) BBox {
	if len(poly) == 0 {
		return BBox{}
	}
	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := minX, minY
	for _, p := range poly[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Union returns the union of two bounding boxes
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// Scale multiplies every coordinate by f
func (b BBox) Scale(f float64) BBox {
	return BBox{X: b.X * f, Y: b.Y * f, Width: b.Width * f, Height: b.Height * f}
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Polygon returns the four corners of the box, clockwise from top-left
func (b BBox) Polygon() Polygon {
	return Rect(b.Left(), b.Top(), b.Right(), b.Bottom())
}
