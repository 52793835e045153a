package config

import (
	"errors"
	"fmt"

	"github.com/tsawler/readorder/ocr"
	"github.com/tsawler/readorder/text"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateClustering,
		c.validateDirection,
		c.validateTolerance,
		c.validateImage,
		c.validateText,
		c.validateOCR,
		c.validateBatch,
		c.validateJournal,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateClustering() error {
	if c.Clustering.Epsilon <= 0 {
		return errors.New("clustering.epsilon must be positive")
	}
	if c.Clustering.MinPoints < 1 {
		return errors.New("clustering.min_points must be at least 1")
	}
	return nil
}

func (c *Config) validateDirection() error {
	if _, err := text.ParseMode(c.Direction.Mode); err != nil {
		return fmt.Errorf("direction.mode: %w", err)
	}
	if c.Direction.MinAspectRatio < 1 {
		return errors.New("direction.min_aspect_ratio must be at least 1")
	}
	if c.Direction.ShortTextRelaxation <= 0 || c.Direction.ShortTextRelaxation > 1 {
		return errors.New("direction.short_text_relaxation must be in (0, 1]")
	}
	if c.Direction.VerticalThreshold < 0 || c.Direction.VerticalThreshold > 1 {
		return errors.New("direction.vertical_threshold must be between 0 and 1")
	}
	if c.Direction.StrongVerticalThreshold < c.Direction.VerticalThreshold || c.Direction.StrongVerticalThreshold > 1 {
		return errors.New("direction.strong_vertical_threshold must be between vertical_threshold and 1")
	}
	if c.Direction.MinBlockSize < 0 {
		return errors.New("direction.min_block_size must be non-negative")
	}
	if c.Direction.SizeRatio < 0 {
		return errors.New("direction.size_ratio must be non-negative")
	}
	return nil
}

func (c *Config) validateTolerance() error {
	for name, r := range map[string]ToleranceRatios{
		"horizontal": c.Tolerance.Horizontal,
		"vertical":   c.Tolerance.Vertical,
	} {
		if r.ClusterX < 0 || r.ClusterY < 0 || r.BlockX < 0 || r.BlockY < 0 {
			return fmt.Errorf("tolerance.%s ratios must be non-negative", name)
		}
	}
	return nil
}

func (c *Config) validateImage() error {
	if c.Image.Inflation < 1 {
		return errors.New("image.inflation must be at least 1")
	}
	if c.Image.MinWidth < 0 || c.Image.MinHeight < 0 {
		return errors.New("image.min_width and image.min_height must be non-negative")
	}
	return nil
}

func (c *Config) validateText() error {
	if _, err := text.ParseNormalizationForm(c.Text.Normalization); err != nil {
		return fmt.Errorf("text.normalization: %w", err)
	}
	return nil
}

func (c *Config) validateOCR() error {
	if len(c.OCR.Languages) == 0 {
		return errors.New("ocr.languages must list at least one language")
	}
	if _, err := ocr.ParseLevel(c.OCR.Level); err != nil {
		return fmt.Errorf("ocr.level: %w", err)
	}
	if c.OCR.PageSegMode < 0 || c.OCR.PageSegMode > 13 {
		return errors.New("ocr.page_seg_mode must be between 0 and 13")
	}
	if c.OCR.MaxImageSize < 0 {
		return errors.New("ocr.max_image_size must be non-negative")
	}
	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 1 {
		return errors.New("ocr.min_confidence must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers < 1 {
		return errors.New("batch.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateJournal() error {
	if c.Journal.Path != "" {
		return nil
	}
	if c.Journal.Enabled {
		return errors.New("journal.path must be set when the journal is enabled")
	}
	if c.Batch.Resume {
		return errors.New("journal.path must be set when batch.resume is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("logging.color: unsupported value %q", c.Logging.Color)
	}
	return nil
}
