// Package layout turns clustered OCR fragments into reading-ordered text.
//
// The package works in image coordinates: X grows to the right and Y grows
// downward.
//
// # Image Size Estimation
//
// OCR results rarely carry the source image size, so [EstimateImageSize]
// derives one from the spread of all fragment vertices:
//
//	size := layout.EstimateImageSize(fragments, layout.DefaultImageEstimateConfig())
//
// # Tolerances
//
// Sorting tolerances are fractions of the image size, with one ratio set per
// reading direction:
//
//	table := layout.DefaultToleranceTable()
//	tol := layout.ComputeTolerances(size, table.For(direction))
//
// # Reading Order
//
// A [Cluster] is one line (horizontal text) or one column (vertical text).
// The [ReadingOrderSorter] orders clusters and the fragments inside them:
//
//   - Horizontal: lines top to bottom, words left to right
//   - Vertical: columns right to left, characters top to bottom
//
// Comparisons that fall inside the tolerances are treated as ties and keep
// their input order.
//
//	sorter := layout.NewReadingOrderSorter(direction, tol)
//	sorter.Sort(clusters)
//
// # Assembly
//
// The [TextAssembler] joins fragments within a cluster (with a space for
// horizontal text, with nothing for vertical text) and clusters with
// newlines:
//
//	text := layout.NewTextAssembler(direction, text.NormNFC).Assemble(clusters)
package layout
