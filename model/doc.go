// Package model provides the geometric primitives shared by the readorder
// packages.
//
// All coordinates are image pixel coordinates: the origin is the top-left
// corner of the image and Y grows downward.
//
// # Geometry
//
//   - [Point] - 2D point with Euclidean distance
//   - [Polygon] - ordered vertex list of an OCR bounding quadrilateral
//   - [BBox] - axis-aligned bounding box
//   - [Size] - width/height pair used for fragment and image extents
//
// [Center] and [Dimensions] accept malformed (empty) polygons and return zero
// values instead of failing, so a single bad OCR box cannot abort a run.
package model
