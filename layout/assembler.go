package layout

import (
	"strings"

	"github.com/tsawler/readorder/text"
)

// TextAssembler joins sorted clusters into the final text
type TextAssembler struct {
	direction text.Direction
	form      text.NormalizationForm
}

// NewTextAssembler creates an assembler for a direction and normalization form
func NewTextAssembler(direction text.Direction, form text.NormalizationForm) *TextAssembler {
	return &TextAssembler{direction: direction, form: form}
}

// Separator returns the string placed between fragments of one cluster:
// nothing for vertical CJK columns, a space for horizontal lines.
func (a *TextAssembler) Separator() string {
	if a.direction == text.Vertical {
		return ""
	}
	return " "
}

// ClusterText returns the text of one cluster in fragment order. Fragments
// that are empty after normalization are skipped.
func (a *TextAssembler) ClusterText(c Cluster) string {
	parts := make([]string, 0, len(c.Fragments))
	for _, f := range c.Fragments {
		if s := text.Normalize(f.Text, a.form); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, a.Separator())
}

// Assemble joins cluster texts with newlines in cluster order, skipping
// clusters with no text
func (a *TextAssembler) Assemble(clusters []Cluster) string {
	var sb strings.Builder
	for _, c := range clusters {
		s := a.ClusterText(c)
		if s == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s)
	}
	return sb.String()
}
