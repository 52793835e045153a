package cluster

import (
	"reflect"
	"testing"

	"github.com/tsawler/readorder/model"
)

func pts(coords ...float64) []model.Point {
	var out []model.Point
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, model.Point{X: coords[i], Y: coords[i+1]})
	}
	return out
}

// assertPartition fails unless clusters contain every index in [0,n) exactly once
func assertPartition(t *testing.T, clusters [][]int, n int) {
	t.Helper()
	seen := make([]int, n)
	for _, c := range clusters {
		if len(c) == 0 {
			t.Errorf("empty cluster in %v", clusters)
		}
		for _, idx := range c {
			if idx < 0 || idx >= n {
				t.Fatalf("index %d out of range [0,%d)", idx, n)
			}
			seen[idx]++
		}
	}
	for i, count := range seen {
		if count != 1 {
			t.Errorf("index %d appears %d times, want 1", i, count)
		}
	}
}

func TestCluster_Empty(t *testing.T) {
	if got := NewClusterer().Cluster(nil); got != nil {
		t.Errorf("Cluster(nil) = %v, want nil", got)
	}
}

func TestCluster_SinglePoint(t *testing.T) {
	got := NewClusterer().Cluster(pts(10, 10))
	want := [][]int{{0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cluster() = %v, want %v", got, want)
	}
}

func TestCluster_TwoGroupsAndOutlier(t *testing.T) {
	// Group A is 0,2,4; group B is 3,5; 1 is an outlier
	points := pts(0, 0, 1000, 1000, 30, 0, 500, 0, 60, 0, 530, 10)

	c := NewClustererWithConfig(Config{Epsilon: 50, MinPoints: 2})
	got := c.Cluster(points)
	want := [][]int{{0, 2, 4}, {3, 5}, {1}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cluster() = %v, want %v", got, want)
	}
	assertPartition(t, got, len(points))
}

func TestCluster_ChainReachability(t *testing.T) {
	// Each point is within epsilon of the next only; the whole chain is density reachable
	points := pts(0, 0, 40, 0, 80, 0, 120, 0, 160, 0)

	got := NewClustererWithConfig(Config{Epsilon: 45, MinPoints: 2}).Cluster(points)
	if len(got) != 1 {
		t.Fatalf("expected one chained cluster, got %v", got)
	}
	assertPartition(t, got, len(points))
}

func TestCluster_BorderPointDoesNotExpand(t *testing.T) {
	// 0,1,2 are core points; 3 is a border point of 2; 4 sits just outside 3's reach
	points := pts(0, 0, 10, 0, 20, 0, 60, 0, 101, 0)

	got := NewClustererWithConfig(Config{Epsilon: 40, MinPoints: 3}).Cluster(points)
	want := [][]int{{0, 1, 2, 3}, {4}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cluster() = %v, want %v", got, want)
	}
}

func TestCluster_NoDensePoints(t *testing.T) {
	points := pts(0, 0, 100, 0, 200, 0)

	got := NewClustererWithConfig(Config{Epsilon: 10, MinPoints: 2}).Cluster(points)
	want := [][]int{{0}, {1}, {2}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cluster() = %v, want %v", got, want)
	}
}

func TestCluster_MinPointsOneBoundary(t *testing.T) {
	points := pts(0, 0, 30, 0, 60, 0, 500, 500)

	tests := []struct {
		name    string
		epsilon float64
		want    [][]int
	}{
		{"small epsilon gives singletons", 5, [][]int{{0}, {1}, {2}, {3}}},
		{"medium epsilon joins neighbors", 35, [][]int{{0, 1, 2}, {3}}},
		{"huge epsilon gives one cluster", 10000, [][]int{{0, 1, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, minPts := range []int{1, 0, -3} {
				got := NewClustererWithConfig(Config{Epsilon: tt.epsilon, MinPoints: minPts}).Cluster(points)
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("MinPoints=%d: Cluster() = %v, want %v", minPts, got, tt.want)
				}
			}
		})
	}
}

func TestCluster_EpsilonIsInclusive(t *testing.T) {
	points := pts(0, 0, 3, 4)

	got := NewClustererWithConfig(Config{Epsilon: 5, MinPoints: 2}).Cluster(points)
	if len(got) != 1 {
		t.Errorf("points exactly epsilon apart should be neighbors, got %v", got)
	}
}

func TestCluster_Deterministic(t *testing.T) {
	var points []model.Point
	for i := 0; i < 40; i++ {
		points = append(points, model.Point{X: float64((i * 37) % 400), Y: float64((i * 91) % 300)})
	}

	c := NewClustererWithConfig(Config{Epsilon: 60, MinPoints: 3})
	first := c.Cluster(points)
	assertPartition(t, first, len(points))

	for i := 0; i < 5; i++ {
		if got := c.Cluster(points); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}
