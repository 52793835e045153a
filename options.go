package readorder

import (
	"github.com/tsawler/readorder/cluster"
	"github.com/tsawler/readorder/layout"
	"github.com/tsawler/readorder/text"
)

// Config holds every tunable of the pipeline. It is passed explicitly to each
// call; nothing is read from process-wide state, so concurrent calls with
// different configurations are safe.
type Config struct {
	// Clustering holds the DBSCAN parameters (epsilon, minimum points)
	Clustering cluster.Config

	// Direction holds the writing-direction mode and vote thresholds
	Direction text.DirectionConfig

	// Tolerances holds per-direction sorting tolerance ratios
	Tolerances layout.ToleranceTable

	// Image controls the image size estimate used to scale tolerances
	Image layout.ImageEstimateConfig

	// Normalization is the Unicode form applied to fragment text on assembly
	Normalization text.NormalizationForm
}

// DefaultConfig returns the tuned default configuration.
//
// The numeric defaults were tuned empirically on manga and comic pages; they
// are starting points, not derived optima.
func DefaultConfig() Config {
	return Config{
		Clustering:    cluster.DefaultConfig(),
		Direction:     text.DefaultDirectionConfig(),
		Tolerances:    layout.DefaultToleranceTable(),
		Image:         layout.DefaultImageEstimateConfig(),
		Normalization: text.NormNFC,
	}
}
