package readorder

import (
	"context"
	"fmt"
	"os"

	"github.com/tsawler/readorder/format"
	"github.com/tsawler/readorder/hocr"
	"github.com/tsawler/readorder/input"
	"github.com/tsawler/readorder/layout"
	"github.com/tsawler/readorder/ocr"
	"github.com/tsawler/readorder/text"
)

// Processor provides a fluent interface for configuring and running the
// pipeline. Each configuration method returns a new Processor instance,
// making it safe for concurrent use and allowing method chaining.
type Processor struct {
	config    Config
	ocrConfig ocr.Config
	inputOpts input.Options

	// recognizer overrides the Tesseract client for image input
	recognizer ocr.Recognizer
}

// New returns a Processor with default configuration.
//
// Example:
//
//	res := readorder.New().Epsilon(60).Direction(text.ModeVertical).Process(fragments)
func New() *Processor {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig returns a Processor using cfg.
func NewWithConfig(cfg Config) *Processor {
	return &Processor{
		config:    cfg,
		ocrConfig: ocr.DefaultConfig(),
		inputOpts: input.DefaultOptions(),
	}
}

// clone creates a copy of the Processor with its own configuration.
func (p *Processor) clone() *Processor {
	newProc := *p
	newProc.ocrConfig.Languages = append([]string(nil), p.ocrConfig.Languages...)
	return &newProc
}

// Config returns the pipeline configuration.
func (p *Processor) Config() Config {
	return p.config
}

// Epsilon sets the clustering neighbor distance in pixels.
func (p *Processor) Epsilon(eps float64) *Processor {
	newProc := p.clone()
	newProc.config.Clustering.Epsilon = eps
	return newProc
}

// MinPoints sets the neighborhood size needed to seed a cluster.
func (p *Processor) MinPoints(n int) *Processor {
	newProc := p.clone()
	newProc.config.Clustering.MinPoints = n
	return newProc
}

// Direction forces a reading direction, or restores detection with text.ModeAuto.
func (p *Processor) Direction(mode text.Mode) *Processor {
	newProc := p.clone()
	newProc.config.Direction.Mode = mode
	return newProc
}

// MinAspectRatio sets the height/width ratio at which a fragment votes vertical.
func (p *Processor) MinAspectRatio(ratio float64) *Processor {
	newProc := p.clone()
	newProc.config.Direction.MinAspectRatio = ratio
	return newProc
}

// VerticalThresholds sets the weak and strong vertical vote cutoffs.
func (p *Processor) VerticalThresholds(weak, strong float64) *Processor {
	newProc := p.clone()
	newProc.config.Direction.VerticalThreshold = weak
	newProc.config.Direction.StrongVerticalThreshold = strong
	return newProc
}

// Tolerances replaces the per-direction tolerance ratios.
func (p *Processor) Tolerances(table layout.ToleranceTable) *Processor {
	newProc := p.clone()
	newProc.config.Tolerances = table
	return newProc
}

// Normalization sets the Unicode normalization applied to assembled text.
func (p *Processor) Normalization(form text.NormalizationForm) *Processor {
	newProc := p.clone()
	newProc.config.Normalization = form
	return newProc
}

// OCR sets the engine configuration used for image input.
func (p *Processor) OCR(cfg ocr.Config) *Processor {
	newProc := p.clone()
	newProc.ocrConfig = cfg
	newProc.ocrConfig.Languages = append([]string(nil), cfg.Languages...)
	return newProc
}

// HOCRLevel selects word or line fragments from hOCR input.
func (p *Processor) HOCRLevel(level hocr.Level) *Processor {
	newProc := p.clone()
	newProc.inputOpts.HOCRLevel = level
	return newProc
}

// Recognizer uses r instead of a Tesseract client for image input. The
// Processor does not close r.
func (p *Processor) Recognizer(r ocr.Recognizer) *Processor {
	newProc := p.clone()
	newProc.recognizer = r
	return newProc
}

// Process runs the pipeline over fragments. It never fails; see Cluster.
func (p *Processor) Process(fragments []text.TextFragment) *Result {
	return Cluster(fragments, p.config)
}

// ProcessFile reads, decodes and processes the file at path. Images are run
// through OCR first. Errors come only from reading, decoding and OCR; the
// pipeline itself never fails.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.ProcessBytes(ctx, path, data)
}

// ProcessBytes processes data; name is used for format detection and errors.
func (p *Processor) ProcessBytes(ctx context.Context, name string, data []byte) (*Result, error) {
	frags, err := p.Fragments(ctx, name, data)
	if err != nil {
		return nil, err
	}
	return p.Process(frags), nil
}

// Fragments decodes or recognizes data into fragments without processing them.
func (p *Processor) Fragments(ctx context.Context, name string, data []byte) ([]text.TextFragment, error) {
	f := format.DetectFile(name, data)
	if !f.NeedsOCR() {
		frags, err := input.DecodeWithOptions(data, f, p.inputOpts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return frags, nil
	}

	rec := p.recognizer
	if rec == nil {
		client, err := ocr.NewWithConfig(p.ocrConfig)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defer client.Close()
		rec = client
	}

	frags, err := ocr.Extract(ctx, rec, data, p.ocrConfig.MaxImageSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return frags, nil
}
