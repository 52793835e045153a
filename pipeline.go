package readorder

import (
	"fmt"
	"strings"

	"github.com/tsawler/readorder/cluster"
	"github.com/tsawler/readorder/layout"
	"github.com/tsawler/readorder/model"
	"github.com/tsawler/readorder/text"
)

// Cluster runs the full pipeline over fragments: estimate the image size,
// decide the writing direction, cluster fragment centers, sort clusters and
// fragments into reading order, and assemble the text.
//
// Cluster never fails. An empty input yields an empty result with
// ProcessingMethod "empty"; if any stage fails the fragments' own text is
// returned in input order with ProcessingMethod "fallback" and a
// stage-failure warning.
//
// Example:
//
//	res := readorder.Cluster(fragments, readorder.DefaultConfig())
//	fmt.Println(res.FullText)
func Cluster(fragments []text.TextFragment, cfg Config) *Result {
	if len(fragments) == 0 {
		return emptyResult(cfg)
	}
	fragments = finiteFragments(fragments)
	return safely(fragments, cfg, func() *Result {
		return process(fragments, cfg)
	})
}

// finiteFragments returns fragments with any polygon holding a non-finite
// vertex replaced by an empty one, so that such fragments are treated as
// degenerate and no NaN or Inf reaches the result. The input is copied
// only when a replacement is needed.
func finiteFragments(fragments []text.TextFragment) []text.TextFragment {
	var out []text.TextFragment
	for i, f := range fragments {
		if f.Polygon.IsFinite() {
			continue
		}
		if out == nil {
			out = make([]text.TextFragment, len(fragments))
			copy(out, fragments)
		}
		out[i].Polygon = nil
	}
	if out == nil {
		return fragments
	}
	return out
}

// safely runs fn, converting a panic into the fallback result
func safely(fragments []text.TextFragment, cfg Config, fn func() *Result) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			res = fallbackResult(fragments, cfg, Warning{
				Kind:     WarnStageFailure,
				Message:  fmt.Sprintf("%v", r),
				Fragment: -1,
			})
		}
	}()
	return fn()
}

func process(fragments []text.TextFragment, cfg Config) *Result {
	var warnings []Warning
	for i, f := range fragments {
		if f.IsDegenerate() {
			warnings = append(warnings, Warning{
				Kind:     WarnDegeneratePolygon,
				Message:  fmt.Sprintf("%d vertices, no area", len(f.Polygon)),
				Fragment: i,
			})
		}
	}

	size := layout.EstimateImageSize(fragments, cfg.Image)

	verdict := text.NewDirectionAnalyzerWithConfig(cfg.Direction).Analyze(fragments, size)
	if verdict.Confidence == text.ConfidenceDefault {
		warnings = append(warnings, Warning{
			Kind:     WarnDirectionDefault,
			Message:  "no fragment passed the direction filters; assuming horizontal",
			Fragment: -1,
		})
	}

	centers := make([]model.Point, len(fragments))
	for i, f := range fragments {
		centers[i] = f.Center()
	}
	groups := cluster.NewClustererWithConfig(cfg.Clustering).Cluster(centers)
	clusters := layout.NewClusters(fragments, groups)
	if len(clusters) == 0 {
		return fallbackResult(fragments, cfg, append(warnings, Warning{
			Kind:     WarnNoClusters,
			Message:  "clustering produced no clusters",
			Fragment: -1,
		})...)
	}

	tolerances := layout.ComputeTolerances(size, cfg.Tolerances.For(verdict.Direction))
	layout.NewReadingOrderSorter(verdict.Direction, tolerances).Sort(clusters)

	assembler := layout.NewTextAssembler(verdict.Direction, cfg.Normalization)

	res := &Result{
		FullText:            assembler.Assemble(clusters),
		TextBlocks:          make([]text.TextFragment, 0, len(fragments)),
		Clusters:            make([]ClusterResult, 0, len(clusters)),
		Direction:           verdict.Direction,
		DirectionConfidence: verdict.Confidence,
		Verdict:             verdict,
		ImageDimensions:     size,
		Tolerances:          tolerances,
		ProcessingMethod:    MethodDBSCAN,
		Warnings:            warnings,
	}

	for _, c := range clusters {
		res.TextBlocks = append(res.TextBlocks, c.Fragments...)
		res.Clusters = append(res.Clusters, ClusterResult{
			Index:         c.Index,
			Text:          assembler.ClusterText(c),
			Center:        c.Center,
			BBox:          c.BBox(),
			FragmentCount: c.FragmentCount(),
		})
	}

	return res
}

// emptyResult reports the configured minimum image size, which is what the
// estimate yields when there is no geometry.
func emptyResult(cfg Config) *Result {
	return &Result{
		TextBlocks:          []text.TextFragment{},
		ImageDimensions:     layout.EstimateImageSize(nil, cfg.Image),
		Direction:           text.Horizontal,
		DirectionConfidence: text.ConfidenceDefault,
		Verdict:             text.Verdict{Direction: text.Horizontal, Confidence: text.ConfidenceDefault},
		ProcessingMethod:    MethodEmpty,
	}
}

// fallbackResult returns the fragments' trimmed text in input order, one
// fragment per line. It touches no geometry; ImageDimensions is the
// configured minimum.
func fallbackResult(fragments []text.TextFragment, cfg Config, warnings ...Warning) *Result {
	lines := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if s := strings.TrimSpace(f.Text); s != "" {
			lines = append(lines, s)
		}
	}

	blocks := make([]text.TextFragment, len(fragments))
	copy(blocks, fragments)

	return &Result{
		FullText:            strings.Join(lines, "\n"),
		TextBlocks:          blocks,
		Direction:           text.Horizontal,
		DirectionConfidence: text.ConfidenceDefault,
		Verdict:             text.Verdict{Direction: text.Horizontal, Confidence: text.ConfidenceDefault},
		ImageDimensions:     layout.EstimateImageSize(nil, cfg.Image),
		ProcessingMethod:    MethodFallback,
		Warnings:            warnings,
	}
}
