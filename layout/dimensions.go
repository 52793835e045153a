package layout

import (
	"math"

	"github.com/tsawler/readorder/model"
	"github.com/tsawler/readorder/text"
)

// ImageEstimateConfig holds configuration for estimating the source image
// size from fragment geometry
type ImageEstimateConfig struct {
	// Inflation scales the observed vertex spread to account for margins
	// around the text (default: 1.3)
	Inflation float64

	// MinWidth and MinHeight floor the estimate (default: 500x500)
	MinWidth  float64
	MinHeight float64
}

// DefaultImageEstimateConfig returns the tuned default configuration
func DefaultImageEstimateConfig() ImageEstimateConfig {
	return ImageEstimateConfig{
		Inflation: 1.3,
		MinWidth:  500,
		MinHeight: 500,
	}
}

// EstimateImageSize derives an approximate image size from the spread of all
// fragment vertices, inflated and floored per config. Polygons with
// non-finite vertices are ignored. The result is only used
// to scale tolerances; it is never treated as the true image size.
func EstimateImageSize(fragments []text.TextFragment, config ImageEstimateConfig) model.Size {
	size := model.Size{Width: config.MinWidth, Height: config.MinHeight}

	var bounds model.BBox
	found := false
	for _, f := range fragments {
		if len(f.Polygon) == 0 || !f.Polygon.IsFinite() {
			continue
		}
		b := model.BoundsOf(f.Polygon)
		if !found {
			bounds, found = b, true
			continue
		}
		bounds = bounds.Union(b)
	}

	if !found {
		return size
	}

	size.Width = math.Max(config.MinWidth, bounds.Width*config.Inflation)
	size.Height = math.Max(config.MinHeight, bounds.Height*config.Inflation)
	return size
}
