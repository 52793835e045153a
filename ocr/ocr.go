//go:build ocr

// Package ocr recognizes text in images and returns it as positioned
// fragments.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Vertical Japanese needs the jpn_vert traineddata.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/readorder/model"
	"github.com/tsawler/readorder/text"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
	config Config
}

// New creates a new OCR client with default configuration.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new OCR client with custom configuration.
func NewWithConfig(config Config) (*Client, error) {
	client := gosseract.NewClient()

	if len(config.Languages) > 0 {
		if err := client.SetLanguage(config.Languages...); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting languages %v: %w", config.Languages, err)
		}
	}
	if config.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(config.PageSegMode)); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting page segmentation mode: %w", err)
		}
	}

	return &Client{client: client, config: config}, nil
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Recognize performs OCR on image data and returns one fragment per word or
// line, depending on the configured level. Tesseract cannot be interrupted;
// ctx is checked before and after recognition.
func (c *Client) Recognize(ctx context.Context, imageData []byte) ([]text.TextFragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	level := gosseract.RIL_WORD
	if c.config.Level == LevelLine {
		level = gosseract.RIL_TEXTLINE
	}

	boxes, err := c.client.GetBoundingBoxes(level)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frags := make([]text.TextFragment, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		confidence := b.Confidence / 100
		if word == "" || confidence < c.config.MinConfidence {
			continue
		}
		frags = append(frags, text.TextFragment{
			Text: word,
			Polygon: model.Rect(
				float64(b.Box.Min.X), float64(b.Box.Min.Y),
				float64(b.Box.Max.X), float64(b.Box.Max.Y),
			),
			Confidence: confidence,
		})
	}
	return frags, nil
}
