package layout

import (
	"github.com/tsawler/readorder/model"
	"github.com/tsawler/readorder/text"
)

// Cluster is a group of fragments forming one line (horizontal text) or one
// column (vertical text)
type Cluster struct {
	// Fragments in this cluster; in reading order once sorted
	Fragments []text.TextFragment

	// Center is the mean of the fragment centers
	Center model.Point

	// Index is the cluster's position in reading order (0-based)
	Index int
}

// NewCluster creates a cluster from fragments and computes its center
func NewCluster(fragments []text.TextFragment) Cluster {
	c := Cluster{Fragments: fragments}
	if len(fragments) == 0 {
		return c
	}
	var sx, sy float64
	for _, f := range fragments {
		p := f.Center()
		sx += p.X
		sy += p.Y
	}
	n := float64(len(fragments))
	c.Center = model.Point{X: sx / n, Y: sy / n}
	return c
}

// NewClusters builds clusters from index groups into fragments, as produced
// by cluster.Clusterer. Each cluster gets its own copy of the fragments.
func NewClusters(fragments []text.TextFragment, groups [][]int) []Cluster {
	clusters := make([]Cluster, 0, len(groups))
	for i, group := range groups {
		members := make([]text.TextFragment, 0, len(group))
		for _, idx := range group {
			if idx >= 0 && idx < len(fragments) {
				members = append(members, fragments[idx])
			}
		}
		if len(members) == 0 {
			continue
		}
		c := NewCluster(members)
		c.Index = i
		clusters = append(clusters, c)
	}
	return clusters
}

// FragmentCount returns the number of fragments in the cluster
func (c Cluster) FragmentCount() int {
	return len(c.Fragments)
}

// BBox returns the union of the fragment bounding boxes
func (c Cluster) BBox() model.BBox {
	var box model.BBox
	found := false
	for _, f := range c.Fragments {
		if len(f.Polygon) == 0 {
			continue
		}
		if !found {
			box, found = f.BBox(), true
			continue
		}
		box = box.Union(f.BBox())
	}
	return box
}
