package layout

import (
	"strings"
	"testing"

	"github.com/tsawler/readorder/model"
	"github.com/tsawler/readorder/text"
)

// makeROFragment creates a square fragment of side s centered at (cx, cy)
func makeROFragment(t string, cx, cy, s float64) text.TextFragment {
	h := s / 2
	return text.NewFragment(t, cx-h, cy-h, cx+h, cy+h)
}

func clusterAt(name string, cx, cy float64) Cluster {
	return NewCluster([]text.TextFragment{makeROFragment(name, cx, cy, 10)})
}

func clusterNames(clusters []Cluster) string {
	var names []string
	for _, c := range clusters {
		names = append(names, c.Fragments[0].Text)
	}
	return strings.Join(names, ",")
}

func fragmentNames(fragments []text.TextFragment) string {
	var names []string
	for _, f := range fragments {
		names = append(names, f.Text)
	}
	return strings.Join(names, ",")
}

func TestSortClusters(t *testing.T) {
	tol := ToleranceSet{ClusterX: 50, ClusterY: 25, BlockX: 10, BlockY: 10}

	tests := []struct {
		name      string
		direction text.Direction
		clusters  []Cluster
		want      string
	}{
		{
			name:      "horizontal lines top to bottom",
			direction: text.Horizontal,
			clusters:  []Cluster{clusterAt("c", 100, 300), clusterAt("a", 100, 10), clusterAt("b", 100, 150)},
			want:      "a,b,c",
		},
		{
			name:      "horizontal same band left to right",
			direction: text.Horizontal,
			clusters:  []Cluster{clusterAt("right", 300, 100), clusterAt("left", 100, 110), clusterAt("below", 50, 300)},
			want:      "left,right,below",
		},
		{
			name:      "vertical columns right to left",
			direction: text.Vertical,
			clusters:  []Cluster{clusterAt("x100", 100, 200), clusterAt("x400", 400, 210), clusterAt("x300", 300, 190)},
			want:      "x400,x300,x100",
		},
		{
			name:      "vertical bands top to bottom",
			direction: text.Vertical,
			clusters:  []Cluster{clusterAt("low", 400, 500), clusterAt("high", 100, 100)},
			want:      "high,low",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewReadingOrderSorter(tt.direction, tol)
			s.SortClusters(tt.clusters)
			if got := clusterNames(tt.clusters); got != tt.want {
				t.Errorf("order = %q, want %q", got, tt.want)
			}
			for i, c := range tt.clusters {
				if c.Index != i {
					t.Errorf("cluster %d has Index %d", i, c.Index)
				}
			}
		})
	}
}

func TestSortFragments(t *testing.T) {
	tol := ToleranceSet{ClusterX: 50, ClusterY: 25, BlockX: 10, BlockY: 10}

	tests := []struct {
		name      string
		direction text.Direction
		fragments []text.TextFragment
		want      string
	}{
		{
			name:      "horizontal left to right",
			direction: text.Horizontal,
			fragments: []text.TextFragment{makeROFragment("World", 100, 20, 20), makeROFragment("Hello", 10, 22, 20)},
			want:      "Hello,World",
		},
		{
			name:      "horizontal Y decides beyond tolerance",
			direction: text.Horizontal,
			fragments: []text.TextFragment{makeROFragment("second", 10, 50, 20), makeROFragment("first", 200, 20, 20)},
			want:      "first,second",
		},
		{
			name:      "vertical column top to bottom",
			direction: text.Vertical,
			fragments: []text.TextFragment{
				makeROFragment("3", 100, 90, 20),
				makeROFragment("1", 102, 10, 20),
				makeROFragment("2", 98, 50, 20),
			},
			want: "1,2,3",
		},
		{
			name:      "vertical X decides beyond tolerance",
			direction: text.Vertical,
			fragments: []text.TextFragment{makeROFragment("left", 50, 10, 20), makeROFragment("right", 200, 90, 20)},
			want:      "right,left",
		},
		{
			name:      "equal within tolerance keeps input order",
			direction: text.Horizontal,
			fragments: []text.TextFragment{makeROFragment("b", 15, 20, 20), makeROFragment("a", 10, 22, 20)},
			want:      "b,a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			NewReadingOrderSorter(tt.direction, tol).SortFragments(tt.fragments)
			if got := fragmentNames(tt.fragments); got != tt.want {
				t.Errorf("order = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSort_SortsInsideClusters(t *testing.T) {
	tol := ToleranceSet{ClusterX: 50, ClusterY: 25, BlockX: 10, BlockY: 10}
	clusters := []Cluster{
		NewCluster([]text.TextFragment{makeROFragment("d", 300, 200, 20), makeROFragment("c", 100, 200, 20)}),
		NewCluster([]text.TextFragment{makeROFragment("b", 300, 20, 20), makeROFragment("a", 100, 20, 20)}),
	}

	NewReadingOrderSorter(text.Horizontal, tol).Sort(clusters)

	if got := fragmentNames(clusters[0].Fragments); got != "a,b" {
		t.Errorf("first cluster = %q, want a,b", got)
	}
	if got := fragmentNames(clusters[1].Fragments); got != "c,d" {
		t.Errorf("second cluster = %q, want c,d", got)
	}
}

func TestSort_Deterministic(t *testing.T) {
	tol := ToleranceSet{ClusterX: 50, ClusterY: 25, BlockX: 10, BlockY: 10}
	build := func() []Cluster {
		return []Cluster{
			clusterAt("a", 10, 10), clusterAt("b", 12, 11), clusterAt("c", 300, 300),
			clusterAt("d", 11, 12), clusterAt("e", 500, 20),
		}
	}

	first := build()
	s := NewReadingOrderSorter(text.Vertical, tol)
	s.SortClusters(first)
	want := clusterNames(first)

	for i := 0; i < 5; i++ {
		again := build()
		s.SortClusters(again)
		if got := clusterNames(again); got != want {
			t.Fatalf("run %d: %q, want %q", i, got, want)
		}
	}
}

func TestNewCluster_Center(t *testing.T) {
	c := NewCluster([]text.TextFragment{
		makeROFragment("a", 0, 0, 10),
		makeROFragment("b", 100, 50, 10),
	})
	if c.Center != (model.Point{X: 50, Y: 25}) {
		t.Errorf("Center = %v, want {50 25}", c.Center)
	}
	if c.FragmentCount() != 2 {
		t.Errorf("FragmentCount = %d, want 2", c.FragmentCount())
	}

	box := c.BBox()
	if box.Left() != -5 || box.Right() != 105 {
		t.Errorf("BBox = %+v", box)
	}
}

func TestNewClusters(t *testing.T) {
	fragments := []text.TextFragment{
		makeROFragment("a", 0, 0, 10),
		makeROFragment("b", 500, 0, 10),
		makeROFragment("c", 20, 0, 10),
	}

	clusters := NewClusters(fragments, [][]int{{0, 2}, {1}, {}, {7}})
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if got := fragmentNames(clusters[0].Fragments); got != "a,c" {
		t.Errorf("first cluster = %q, want a,c", got)
	}
	if clusters[0].Center.X != 10 {
		t.Errorf("first cluster center X = %v, want 10", clusters[0].Center.X)
	}
}
