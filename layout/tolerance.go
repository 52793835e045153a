package layout

import (
	"github.com/tsawler/readorder/model"
	"github.com/tsawler/readorder/text"
)

// ToleranceRatios expresses sorting tolerances as fractions of the image
// size: X ratios scale with width, Y ratios with height.
type ToleranceRatios struct {
	// ClusterX and ClusterY gate the cluster (line/column) comparator
	ClusterX float64
	ClusterY float64

	// BlockX and BlockY gate the within-cluster fragment comparator
	BlockX float64
	BlockY float64
}

// ToleranceTable holds one ratio set per reading direction
type ToleranceTable struct {
	Horizontal ToleranceRatios
	Vertical   ToleranceRatios
}

// DefaultToleranceTable returns the tuned default ratios
func DefaultToleranceTable() ToleranceTable {
	return ToleranceTable{
		Horizontal: ToleranceRatios{ClusterX: 0.10, ClusterY: 0.05, BlockX: 0.05, BlockY: 0.02},
		Vertical:   ToleranceRatios{ClusterX: 0.05, ClusterY: 0.10, BlockX: 0.02, BlockY: 0.02},
	}
}

// For returns the ratios for a direction
func (t ToleranceTable) For(d text.Direction) ToleranceRatios {
	if d == text.Vertical {
		return t.Vertical
	}
	return t.Horizontal
}

// ToleranceSet holds pixel tolerances for one image
type ToleranceSet struct {
	ClusterX float64 `json:"clusterToleranceX"`
	ClusterY float64 `json:"clusterToleranceY"`
	BlockX   float64 `json:"blockToleranceX"`
	BlockY   float64 `json:"blockToleranceY"`
}

// ComputeTolerances scales ratios by the image size
func ComputeTolerances(size model.Size, ratios ToleranceRatios) ToleranceSet {
	return ToleranceSet{
		ClusterX: size.Width * ratios.ClusterX,
		ClusterY: size.Height * ratios.ClusterY,
		BlockX:   size.Width * ratios.BlockX,
		BlockY:   size.Height * ratios.BlockY,
	}
}
