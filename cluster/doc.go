// Package cluster provides density-based clustering (DBSCAN) over 2D points.
//
// The clusterer groups points whose neighborhoods are dense enough into
// clusters and, unlike textbook DBSCAN, never discards noise: every point
// that no dense region reaches is returned as its own singleton cluster.
// OCR output routinely contains isolated short captions that must still
// appear in the final text.
//
//	c := cluster.NewClusterer()
//	groups := c.Cluster(points) // [][]int of indices into points
//
// Results are deterministic: points are visited in input order and ties are
// broken by index.
package cluster
