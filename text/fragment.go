package text

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/readorder/model"
)

// TextFragment represents one OCR-recognized unit of text with its bounding
// polygon in image pixel space.
type TextFragment struct {
	Text    string        `json:"text"`
	Polygon model.Polygon `json:"boundingPolygon"`

	// Confidence is the recognizer's score in [0,1] when the source reports one
	Confidence float64 `json:"confidence,omitempty"`
}

// NewFragment creates a fragment covering the axis-aligned box (x0,y0)-(x1,y1)
func NewFragment(text string, x0, y0, x1, y1 float64) TextFragment {
	return TextFragment{Text: text, Polygon: model.Rect(x0, y0, x1, y1)}
}

// Center returns the mean of the fragment's polygon vertices
func (f TextFragment) Center() model.Point {
	return model.Center(f.Polygon)
}

// Dimensions returns the extent of the fragment's bounding box
func (f TextFragment) Dimensions() model.Size {
	return model.Dimensions(f.Polygon)
}

// BBox returns the fragment's axis-aligned bounding box
func (f TextFragment) BBox() model.BBox {
	return model.BoundsOf(f.Polygon)
}

// RuneCount returns the number of characters in the trimmed text
func (f TextFragment) RuneCount() int {
	return utf8.RuneCountInString(strings.TrimSpace(f.Text))
}

// IsDegenerate reports whether the fragment has no usable geometry:
// no vertices, a non-finite vertex, or a bounding box with zero area.
func (f TextFragment) IsDegenerate() bool {
	return len(f.Polygon) == 0 || !f.Polygon.IsFinite() || f.Dimensions().IsEmpty()
}

// Scaled returns a copy of the fragment with every vertex multiplied by factor
func (f TextFragment) Scaled(factor float64) TextFragment {
	poly := make(model.Polygon, len(f.Polygon))
	for i, p := range f.Polygon {
		poly[i] = model.Point{X: p.X * factor, Y: p.Y * factor}
	}
	f.Polygon = poly
	return f
}
