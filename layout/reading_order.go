package layout

import (
	"math"
	"sort"

	"github.com/tsawler/readorder/model"
	"github.com/tsawler/readorder/text"
)

// ReadingOrderSorter orders clusters and the fragments inside them for one
// reading direction. Image coordinates have Y increasing downward.
//
// Horizontal text reads top to bottom by line and left to right within a
// line. Vertical text reads right to left by column and top to bottom
// within a column.
type ReadingOrderSorter struct {
	direction  text.Direction
	tolerances ToleranceSet
}

// NewReadingOrderSorter creates a sorter for a direction and tolerance set
func NewReadingOrderSorter(direction text.Direction, tolerances ToleranceSet) *ReadingOrderSorter {
	return &ReadingOrderSorter{direction: direction, tolerances: tolerances}
}

// Direction returns the sorter's reading direction
func (s *ReadingOrderSorter) Direction() text.Direction {
	return s.direction
}

// Tolerances returns the sorter's tolerance set
func (s *ReadingOrderSorter) Tolerances() ToleranceSet {
	return s.tolerances
}

// Sort orders clusters in place, orders the fragments inside each cluster,
// and renumbers cluster indices to match the new order. Items the
// comparators consider equal keep their relative order.
func (s *ReadingOrderSorter) Sort(clusters []Cluster) {
	for i := range clusters {
		s.SortFragments(clusters[i].Fragments)
	}
	s.SortClusters(clusters)
}

// SortClusters orders clusters in place by their centers and renumbers
// their indices
func (s *ReadingOrderSorter) SortClusters(clusters []Cluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		return s.compareClusters(clusters[i].Center, clusters[j].Center) < 0
	})
	for i := range clusters {
		clusters[i].Index = i
	}
}

// SortFragments orders fragments in place by their centers
func (s *ReadingOrderSorter) SortFragments(fragments []text.TextFragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		return s.compareFragments(fragments[i].Center(), fragments[j].Center()) < 0
	})
}

// compareClusters orders two cluster centers. Centers whose Y values fall
// within the cluster Y tolerance sit on the same band and are ordered by X:
// descending for vertical columns, ascending for horizontal lines.
func (s *ReadingOrderSorter) compareClusters(a, b model.Point) int {
	if dy := a.Y - b.Y; math.Abs(dy) > s.tolerances.ClusterY {
		return sign(dy)
	}
	if s.direction == text.Vertical {
		return sign(b.X - a.X)
	}
	return sign(a.X - b.X)
}

// compareFragments orders two fragment centers within a cluster. The
// primary axis decides when its difference exceeds its tolerance, then the
// secondary axis, otherwise the two are equal.
func (s *ReadingOrderSorter) compareFragments(a, b model.Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y

	if s.direction == text.Vertical {
		if math.Abs(dx) > s.tolerances.BlockX {
			return sign(-dx)
		}
		if math.Abs(dy) > s.tolerances.BlockY {
			return sign(dy)
		}
		return 0
	}

	if math.Abs(dy) > s.tolerances.BlockY {
		return sign(dy)
	}
	if math.Abs(dx) > s.tolerances.BlockX {
		return sign(dx)
	}
	return 0
}

func sign(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
