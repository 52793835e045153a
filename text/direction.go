package text

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tsawler/readorder/model"
)

// Direction represents the dominant flow of text on an image.
type Direction int

const (
	// Horizontal is left-to-right lines read top to bottom (Western convention)
	Horizontal Direction = iota
	// Vertical is top-to-bottom columns read right to left (CJK convention)
	Vertical
)

// String returns "horizontal" or "vertical".
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "horizontal":
		*d = Horizontal
	case "vertical":
		*d = Vertical
	default:
		return fmt.Errorf("unknown direction %q", string(b))
	}
	return nil
}

// Mode selects automatic detection or a forced direction.
type Mode int

const (
	// ModeAuto detects the direction from fragment geometry
	ModeAuto Mode = iota
	// ModeHorizontal forces horizontal reading order
	ModeHorizontal
	// ModeVertical forces vertical reading order
	ModeVertical
)

// String returns "auto", "horizontal" or "vertical".
func (m Mode) String() string {
	switch m {
	case ModeHorizontal:
		return "horizontal"
	case ModeVertical:
		return "vertical"
	default:
		return "auto"
	}
}

// ParseMode converts a textDirection option value into a Mode.
// The empty string means auto.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "horizontal":
		return ModeHorizontal, nil
	case "vertical":
		return ModeVertical, nil
	default:
		return ModeAuto, fmt.Errorf("unknown text direction %q (want auto, horizontal or vertical)", s)
	}
}

// Confidence grades how certain a direction verdict is.
type Confidence int

const (
	// ConfidenceDefault means nothing could be analyzed and the verdict fell back to horizontal
	ConfidenceDefault Confidence = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
	// ConfidenceManual means the direction was forced by configuration
	ConfidenceManual
)

// String returns the lower-case confidence name.
func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	case ConfidenceManual:
		return "manual"
	default:
		return "default"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Confidence) UnmarshalText(b []byte) error {
	for _, v := range []Confidence{ConfidenceDefault, ConfidenceLow, ConfidenceMedium, ConfidenceHigh, ConfidenceManual} {
		if v.String() == string(b) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown confidence %q", string(b))
}

// Verdict is the outcome of one direction analysis run.
type Verdict struct {
	Direction       Direction  `json:"direction"`
	Confidence      Confidence `json:"confidence"`
	VerticalRatio   float64    `json:"verticalRatio"`
	HorizontalRatio float64    `json:"horizontalRatio"`

	// Analyzed is the number of fragments that passed the size filter
	Analyzed int `json:"analyzed"`
}

// DirectionConfig holds configuration for direction analysis
type DirectionConfig struct {
	// Mode is auto detection or a forced direction
	Mode Mode

	// MinAspectRatio is the height/width ratio at or above which a fragment
	// votes vertical; at or below 1/MinAspectRatio it votes horizontal (default: 1.2)
	MinAspectRatio float64

	// ShortTextRelaxation scales MinAspectRatio for 1-2 character fragments,
	// which are nearly square for CJK glyphs (default: 0.95)
	ShortTextRelaxation float64

	// VerticalThreshold is the weak vertical cutoff on the vertical vote ratio (default: 0.3)
	VerticalThreshold float64

	// StrongVerticalThreshold is the vertical ratio that alone decides vertical (default: 0.6)
	StrongVerticalThreshold float64

	// MinBlockSize is the floor, in pixels, of the adaptive minimum fragment size (default: 10)
	MinBlockSize float64

	// SizeRatio scales sqrt(image area) into the adaptive minimum size (default: 0.008)
	SizeRatio float64
}

// DefaultDirectionConfig returns the tuned default configuration
func DefaultDirectionConfig() DirectionConfig {
	return DirectionConfig{
		Mode:                    ModeAuto,
		MinAspectRatio:          1.2,
		ShortTextRelaxation:     0.95,
		VerticalThreshold:       0.3,
		StrongVerticalThreshold: 0.6,
		MinBlockSize:            10,
		SizeRatio:               0.008,
	}
}

// DirectionAnalyzer votes on the dominant writing direction of a fragment set
type DirectionAnalyzer struct {
	config DirectionConfig
}

// NewDirectionAnalyzer creates a direction analyzer with default configuration
func NewDirectionAnalyzer() *DirectionAnalyzer {
	return &DirectionAnalyzer{config: DefaultDirectionConfig()}
}

// NewDirectionAnalyzerWithConfig creates a direction analyzer with custom configuration
func NewDirectionAnalyzerWithConfig(config DirectionConfig) *DirectionAnalyzer {
	return &DirectionAnalyzer{config: config}
}

// orientation is a single fragment's vote
type orientation int

const (
	orientSkipped orientation = iota
	orientNeither
	orientVertical
	orientHorizontal
)

// AdaptiveMinSize returns the minimum width and height a fragment needs to
// take part in the vote: max(MinBlockSize, sqrt(imageArea)*SizeRatio).
func (a *DirectionAnalyzer) AdaptiveMinSize(imageSize model.Size) float64 {
	return math.Max(a.config.MinBlockSize, math.Sqrt(math.Max(0, imageSize.Area()))*a.config.SizeRatio)
}

// Analyze computes the direction verdict for fragments on an image of the
// given (estimated) size. It never fails: when no fragment passes the size
// filter the verdict is horizontal with ConfidenceDefault.
func (a *DirectionAnalyzer) Analyze(fragments []TextFragment, imageSize model.Size) Verdict {
	minSize := a.AdaptiveMinSize(imageSize)
	minArea := minSize * minSize

	var verticalWeights, horizontalWeights, allWeights []float64
	analyzed := 0

	for _, f := range fragments {
		vote, weight := a.classify(f, minSize, minArea)
		if vote == orientSkipped {
			continue
		}
		analyzed++
		allWeights = append(allWeights, weight)
		switch vote {
		case orientVertical:
			verticalWeights = append(verticalWeights, weight)
		case orientHorizontal:
			horizontalWeights = append(horizontalWeights, weight)
		}
	}

	total := sortedSum(allWeights)
	verdict := Verdict{Analyzed: analyzed}
	if total > 0 {
		verdict.VerticalRatio = sortedSum(verticalWeights) / total
		verdict.HorizontalRatio = sortedSum(horizontalWeights) / total
	}

	switch a.config.Mode {
	case ModeHorizontal:
		verdict.Direction, verdict.Confidence = Horizontal, ConfidenceManual
		return verdict
	case ModeVertical:
		verdict.Direction, verdict.Confidence = Vertical, ConfidenceManual
		return verdict
	}

	if analyzed == 0 || total == 0 {
		verdict.Direction, verdict.Confidence = Horizontal, ConfidenceDefault
		return verdict
	}

	verdict.Direction, verdict.Confidence = a.decide(verdict.VerticalRatio, verdict.HorizontalRatio)
	return verdict
}

// decide maps vote ratios to a direction and confidence
func (a *DirectionAnalyzer) decide(v, h float64) (Direction, Confidence) {
	if v >= a.config.StrongVerticalThreshold {
		return Vertical, ConfidenceHigh
	}

	if v >= a.config.VerticalThreshold && v > h {
		if math.Abs(v-h) > 0.3 {
			return Vertical, ConfidenceMedium
		}
		return Vertical, ConfidenceLow
	}

	switch {
	case h > 0.6:
		return Horizontal, ConfidenceHigh
	case h > 0.4:
		return Horizontal, ConfidenceMedium
	default:
		return Horizontal, ConfidenceLow
	}
}

// classify returns a fragment's vote and its weight.
// Fragments below minSize on either axis (including zero-area boxes) are skipped.
func (a *DirectionAnalyzer) classify(f TextFragment, minSize, minArea float64) (orientation, float64) {
	dims := f.Dimensions()
	if dims.IsEmpty() || dims.Width < minSize || dims.Height < minSize {
		return orientSkipped, 0
	}

	runes := f.RuneCount()

	sizeBonus := 1.5
	if minArea > 0 {
		sizeBonus = math.Min(1.5, dims.Area()/minArea)
	}
	weight := math.Min(3, math.Max(1, float64(runes)/2)) * sizeBonus

	threshold := a.config.MinAspectRatio
	if runes >= 1 && runes <= 2 {
		threshold *= a.config.ShortTextRelaxation
	}

	aspect := dims.Height / dims.Width
	switch {
	case aspect >= threshold:
		return orientVertical, weight
	case a.config.MinAspectRatio > 0 && aspect <= 1/a.config.MinAspectRatio:
		return orientHorizontal, weight
	default:
		return orientNeither, weight
	}
}

// sortedSum adds values in ascending order so the result does not depend on
// the order fragments were supplied in.
func sortedSum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return sum
}
