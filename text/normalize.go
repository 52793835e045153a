package text

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizationForm selects the Unicode normalization applied to fragment text
// before assembly.
type NormalizationForm int

const (
	// NormNFC composes characters canonically (default)
	NormNFC NormalizationForm = iota
	// NormNone leaves text untouched apart from trimming
	NormNone
	// NormNFKC also folds compatibility forms: full-width Latin letters and
	// digits become ASCII, half-width katakana become full-width.
	NormNFKC
)

// String returns "nfc", "none" or "nfkc".
func (f NormalizationForm) String() string {
	switch f {
	case NormNone:
		return "none"
	case NormNFKC:
		return "nfkc"
	default:
		return "nfc"
	}
}

// ParseNormalizationForm converts a config value into a NormalizationForm.
// The empty string selects NFC.
func ParseNormalizationForm(s string) (NormalizationForm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nfc":
		return NormNFC, nil
	case "none":
		return NormNone, nil
	case "nfkc":
		return NormNFKC, nil
	default:
		return NormNFC, fmt.Errorf("unknown normalization form %q (want none, nfc or nfkc)", s)
	}
}

// Normalize applies form to s and trims surrounding whitespace
func Normalize(s string, form NormalizationForm) string {
	switch form {
	case NormNFC:
		s = norm.NFC.String(s)
	case NormNFKC:
		s = norm.NFKC.String(s)
	}
	return strings.TrimSpace(s)
}
