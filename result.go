package readorder

import (
	"github.com/tsawler/readorder/layout"
	"github.com/tsawler/readorder/model"
	"github.com/tsawler/readorder/text"
)

// Method records how a result was produced
type Method string

const (
	// MethodDBSCAN is the normal path: clustered, sorted and assembled
	MethodDBSCAN Method = "dbscan"

	// MethodEmpty is returned for an empty fragment list
	MethodEmpty Method = "empty"

	// MethodFallback is returned when a stage failed; the text is the
	// original fragment text in input order
	MethodFallback Method = "fallback"
)

// Result is the outcome of one pipeline run. It is the only result shape;
// use Legacy for the flat {text, blocks} form.
type Result struct {
	// FullText is the assembled text in reading order
	FullText string `json:"fullText"`

	// TextBlocks are the input fragments in reading order
	TextBlocks []text.TextFragment `json:"textBlocks"`

	// Clusters describes each line or column in reading order
	Clusters []ClusterResult `json:"clusters,omitempty"`

	Direction           text.Direction  `json:"direction"`
	DirectionConfidence text.Confidence `json:"directionConfidence"`

	// Verdict carries the vote ratios behind Direction
	Verdict text.Verdict `json:"verdict"`

	// ImageDimensions is the estimated image size used for tolerances
	ImageDimensions model.Size `json:"imageDimensions"`

	// Tolerances are the pixel tolerances used for sorting
	Tolerances layout.ToleranceSet `json:"tolerances"`

	ProcessingMethod Method `json:"processingMethod"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// ClusterResult summarizes one sorted cluster
type ClusterResult struct {
	Index         int         `json:"index"`
	Text          string      `json:"text"`
	Center        model.Point `json:"center"`
	BBox          model.BBox  `json:"bbox"`
	FragmentCount int         `json:"fragmentCount"`
}

// LegacyResult is the flat result shape older callers expect
type LegacyResult struct {
	Text   string              `json:"text"`
	Blocks []text.TextFragment `json:"blocks"`
}

// Legacy converts the result to the flat legacy shape
func (r *Result) Legacy() LegacyResult {
	blocks := make([]text.TextFragment, len(r.TextBlocks))
	copy(blocks, r.TextBlocks)
	return LegacyResult{Text: r.FullText, Blocks: blocks}
}

// ClusterCount returns the number of clusters in the result
func (r *Result) ClusterCount() int {
	return len(r.Clusters)
}

// IsFallback reports whether the result came from the fallback path
func (r *Result) IsFallback() bool {
	return r.ProcessingMethod == MethodFallback
}
