package readorder

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal processing issue
type WarningKind string

const (
	// WarnDegeneratePolygon marks a fragment whose polygon is empty or has no
	// area; it is still placed, at its zero-value geometry
	WarnDegeneratePolygon WarningKind = "degenerate-polygon"

	// WarnDirectionDefault marks a run where no fragment passed the direction
	// filters and horizontal was assumed
	WarnDirectionDefault WarningKind = "direction-default"

	// WarnNoClusters marks a run where clustering produced nothing
	WarnNoClusters WarningKind = "no-clusters"

	// WarnStageFailure marks a run where a stage failed and the fallback
	// result was returned
	WarnStageFailure WarningKind = "stage-failure"
)

// Warning describes a non-fatal issue. Processing always produces a result;
// warnings tell the caller how much to trust it.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`

	// Fragment is the index of the fragment concerned, or -1
	Fragment int `json:"fragment"`
}

// String returns a one-line description of the warning
func (w Warning) String() string {
	if w.Fragment >= 0 {
		return fmt.Sprintf("%s: fragment %d: %s", w.Kind, w.Fragment, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// FormatWarnings joins warnings into a human-readable multi-line string
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// HasWarning reports whether warnings contain one of the given kind
func HasWarning(warnings []Warning, kind WarningKind) bool {
	for _, w := range warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}
