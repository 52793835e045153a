package cluster

import (
	"sort"

	"github.com/tsawler/readorder/model"
)

// Config holds DBSCAN parameters
type Config struct {
	// Epsilon is the maximum center distance, in pixels, for two points to be
	// neighbors (default: 80)
	Epsilon float64

	// MinPoints is the neighborhood size (the point itself included) a point
	// needs to seed or expand a cluster (default: 2)
	MinPoints int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Epsilon:   80,
		MinPoints: 2,
	}
}

// Clusterer runs DBSCAN over point sets
type Clusterer struct {
	config Config
}

// NewClusterer creates a clusterer with default configuration
func NewClusterer() *Clusterer {
	return &Clusterer{config: DefaultConfig()}
}

// NewClustererWithConfig creates a clusterer with custom configuration
func NewClustererWithConfig(config Config) *Clusterer {
	return &Clusterer{config: config}
}

// Config returns the clusterer's configuration
func (c *Clusterer) Config() Config {
	return c.config
}

const unassigned = -1

// Cluster partitions points into clusters and returns, for each cluster, the
// ascending indices of its members. Clusters are listed in the order their
// first member was reached. Every index in [0, len(points)) appears in
// exactly one cluster.
func (c *Clusterer) Cluster(points []model.Point) [][]int {
	n := len(points)
	if n == 0 {
		return nil
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = unassigned
	}

	var clusters [][]int

	for i := 0; i < n; i++ {
		if labels[i] != unassigned {
			continue
		}

		neighbors := c.regionQuery(points, i)
		if len(neighbors) < c.minPoints() {
			// Noise for now; may still be claimed as a border point later
			continue
		}

		id := len(clusters)
		clusters = append(clusters, c.expand(points, i, neighbors, id, labels))
	}

	// Points no dense region reached become singleton clusters
	for i := 0; i < n; i++ {
		if labels[i] == unassigned {
			labels[i] = len(clusters)
			clusters = append(clusters, []int{i})
		}
	}

	for _, members := range clusters {
		sort.Ints(members)
	}

	return clusters
}

// expand grows a cluster breadth-first from the core point seed
func (c *Clusterer) expand(points []model.Point, seed int, neighbors []int, id int, labels []int) []int {
	labels[seed] = id
	members := []int{seed}

	queue := make([]int, 0, len(neighbors))
	for _, nb := range neighbors {
		if labels[nb] == unassigned {
			labels[nb] = id
			members = append(members, nb)
			queue = append(queue, nb)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		next := c.regionQuery(points, current)
		if len(next) < c.minPoints() {
			// Border point: belongs to the cluster but does not extend it
			continue
		}

		for _, nb := range next {
			if labels[nb] == unassigned {
				labels[nb] = id
				members = append(members, nb)
				queue = append(queue, nb)
			}
		}
	}

	return members
}

// regionQuery returns the indices of all points within Epsilon of points[i],
// including i itself, in ascending order.
func (c *Clusterer) regionQuery(points []model.Point, i int) []int {
	var result []int
	for j := range points {
		if points[i].Distance(points[j]) <= c.config.Epsilon {
			result = append(result, j)
		}
	}
	return result
}

func (c *Clusterer) minPoints() int {
	if c.config.MinPoints < 1 {
		return 1
	}
	return c.config.MinPoints
}
