// Package input decodes OCR results from files into text fragments.
//
// Three encodings are understood:
//
//   - Fragment JSON: [{"text": "...", "boundingPolygon": [{"x": 0, "y": 0}, ...]}, ...],
//     optionally wrapped as {"fragments": [...]}
//   - Google Cloud Vision text detection responses
//   - Tesseract hOCR
//
// Raster images are recognized by [format.DetectFile] but cannot be decoded
// here; they go through the ocr package first.
//
//	frags, f, err := input.Load("page.json")
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/readorder/format"
	"github.com/tsawler/readorder/hocr"
	"github.com/tsawler/readorder/text"
)

var (
	// ErrUnknownFormat is returned when the input format cannot be determined.
	ErrUnknownFormat = errors.New("unknown input format")

	// ErrNeedsOCR is returned when the input is an image and must be recognized first.
	ErrNeedsOCR = errors.New("input is an image; run OCR first")
)

// Options controls decoding.
type Options struct {
	// HOCRLevel selects word or line fragments from hOCR input
	HOCRLevel hocr.Level
}

// DefaultOptions returns word-level decoding options.
func DefaultOptions() Options {
	return Options{HOCRLevel: hocr.LevelWord}
}

// Load reads and decodes the file at path, detecting its format from
// content and extension.
func Load(path string) ([]text.TextFragment, format.Format, error) {
	return LoadWithOptions(path, DefaultOptions())
}

// LoadWithOptions is Load with explicit options.
func LoadWithOptions(path string, opts Options) ([]text.TextFragment, format.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, format.Unknown, fmt.Errorf("reading %s: %w", path, err)
	}

	f := format.DetectFile(path, data)
	frags, err := DecodeWithOptions(data, f, opts)
	if err != nil {
		return nil, f, fmt.Errorf("%s: %w", path, err)
	}
	return frags, f, nil
}

// Decode decodes data of a known format with default options.
func Decode(data []byte, f format.Format) ([]text.TextFragment, error) {
	return DecodeWithOptions(data, f, DefaultOptions())
}

// DecodeWithOptions decodes data of a known format.
func DecodeWithOptions(data []byte, f format.Format, opts Options) ([]text.TextFragment, error) {
	switch f {
	case format.FragmentsJSON:
		return DecodeFragments(data)
	case format.VisionJSON:
		return DecodeVision(data)
	case format.HOCR:
		return hocr.Parse(bytes.NewReader(data), opts.HOCRLevel)
	case format.Image:
		return nil, ErrNeedsOCR
	default:
		return nil, ErrUnknownFormat
	}
}

// DecodeFragments decodes fragment JSON, either a bare array or an object
// with a "fragments" array.
func DecodeFragments(data []byte) ([]text.TextFragment, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decoding fragments: empty input")
	}

	var frags []text.TextFragment
	if trimmed[0] == '{' {
		var wrapper struct {
			Fragments []text.TextFragment `json:"fragments"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("decoding fragments: %w", err)
		}
		frags = wrapper.Fragments
	} else if err := json.Unmarshal(trimmed, &frags); err != nil {
		return nil, fmt.Errorf("decoding fragments: %w", err)
	}

	if frags == nil {
		frags = []text.TextFragment{}
	}
	return frags, nil
}
