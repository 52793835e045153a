package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/readorder/text"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Level selects the granularity of recognized fragments.
type Level int

const (
	// LevelWord yields one fragment per recognized word
	LevelWord Level = iota
	// LevelLine yields one fragment per recognized text line
	LevelLine
)

// String returns the configuration name of the level
func (l Level) String() string {
	if l == LevelLine {
		return "line"
	}
	return "word"
}

// ParseLevel converts "word" or "line" into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "word":
		return LevelWord, nil
	case "line":
		return LevelLine, nil
	default:
		return LevelWord, fmt.Errorf("unknown OCR level %q (want word or line)", s)
	}
}

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as Tesseract numbers them.
const (
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
)

// Config holds OCR engine settings.
type Config struct {
	// Languages are Tesseract language codes, e.g. ["jpn_vert", "eng"] (default: ["eng"])
	Languages []string

	// Level selects word or line fragments (default: LevelWord)
	Level Level

	// PageSegMode is passed to Tesseract (default: PSM_AUTO)
	PageSegMode PageSegMode

	// MaxImageSize caps the longest image side before recognition; 0 disables
	// resizing (default: 1600)
	MaxImageSize int

	// MinConfidence drops fragments below this confidence in [0, 1] (default: 0)
	MinConfidence float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Languages:    []string{"eng"},
		Level:        LevelWord,
		PageSegMode:  PSM_AUTO,
		MaxImageSize: 1600,
	}
}

// Recognizer turns image bytes into positioned text fragments.
type Recognizer interface {
	Recognize(ctx context.Context, imageData []byte) ([]text.TextFragment, error)
	Close() error
}

// Extract prepares an image (see PrepareImage), recognizes it and maps the
// fragment polygons back to source-image pixels.
func Extract(ctx context.Context, r Recognizer, imageData []byte, maxSize int) ([]text.TextFragment, error) {
	prepared, scale, err := PrepareImage(imageData, maxSize)
	if err != nil {
		return nil, err
	}

	frags, err := r.Recognize(ctx, prepared)
	if err != nil {
		return nil, err
	}

	if scale > 0 && scale != 1 {
		frags = ScaleFragments(frags, 1/scale)
	}
	return frags, nil
}
