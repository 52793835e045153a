package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/tsawler/readorder"
	"github.com/tsawler/readorder/cluster"
	"github.com/tsawler/readorder/hocr"
	"github.com/tsawler/readorder/layout"
	"github.com/tsawler/readorder/ocr"
	"github.com/tsawler/readorder/text"
)

//go:embed sample_config.toml
var sampleConfig string

// Clustering contains DBSCAN parameters.
type Clustering struct {
	Epsilon   float64 `toml:"epsilon"`
	MinPoints int     `toml:"min_points"`
}

// Direction contains writing-direction detection settings.
type Direction struct {
	// Mode is "auto", "horizontal" or "vertical".
	Mode                    string  `toml:"mode"`
	MinAspectRatio          float64 `toml:"min_aspect_ratio"`
	ShortTextRelaxation     float64 `toml:"short_text_relaxation"`
	VerticalThreshold       float64 `toml:"vertical_threshold"`
	StrongVerticalThreshold float64 `toml:"strong_vertical_threshold"`
	MinBlockSize            float64 `toml:"min_block_size"`
	SizeRatio               float64 `toml:"size_ratio"`
}

// ToleranceRatios are sorting tolerances as fractions of the image size.
type ToleranceRatios struct {
	ClusterX float64 `toml:"cluster_x"`
	ClusterY float64 `toml:"cluster_y"`
	BlockX   float64 `toml:"block_x"`
	BlockY   float64 `toml:"block_y"`
}

// Tolerance holds one ratio set per reading direction.
type Tolerance struct {
	Horizontal ToleranceRatios `toml:"horizontal"`
	Vertical   ToleranceRatios `toml:"vertical"`
}

// Image controls the image size estimate.
type Image struct {
	Inflation float64 `toml:"inflation"`
	MinWidth  float64 `toml:"min_width"`
	MinHeight float64 `toml:"min_height"`
}

// Text controls assembly of the output text.
type Text struct {
	// Normalization is "none", "nfc" or "nfkc".
	Normalization string `toml:"normalization"`
}

// OCR contains input decoding and Tesseract settings.
type OCR struct {
	Languages     []string `toml:"languages"`
	Level         string   `toml:"level"`
	PageSegMode   int      `toml:"page_seg_mode"`
	MaxImageSize  int      `toml:"max_image_size"`
	MinConfidence float64  `toml:"min_confidence"`
}

// Batch contains directory processing settings.
type Batch struct {
	Workers int  `toml:"workers"`
	Resume  bool `toml:"resume"`
}

// Output controls where batch results are written.
type Output struct {
	// Dir is the output directory; empty writes next to the input directory.
	Dir       string `toml:"dir"`
	WriteJSON bool   `toml:"write_json"`
}

// Journal controls the SQLite processing journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Color  string `toml:"color"`
}

// Config encapsulates all configuration values for readorder.
//
// Configuration sections by subsystem:
//   - Clustering, Direction, Tolerance, Image, Text: the pipeline itself
//   - OCR: input decoding and Tesseract
//   - Batch, Output, Journal: directory processing
//   - Logging: log format, level and destination
type Config struct {
	Clustering Clustering `toml:"clustering"`
	Direction  Direction  `toml:"direction"`
	Tolerance  Tolerance  `toml:"tolerance"`
	Image      Image      `toml:"image"`
	Text       Text       `toml:"text"`
	OCR        OCR        `toml:"ocr"`
	Batch      Batch      `toml:"batch"`
	Output     Output     `toml:"output"`
	Journal    Journal    `toml:"journal"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error: defaults are returned with exists set to false. READORDER_*
// environment variables override file values.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	c.Direction.Mode = strings.ToLower(strings.TrimSpace(c.Direction.Mode))
	c.Text.Normalization = strings.ToLower(strings.TrimSpace(c.Text.Normalization))
	c.OCR.Level = strings.ToLower(strings.TrimSpace(c.OCR.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Color = strings.ToLower(strings.TrimSpace(c.Logging.Color))

	langs := c.OCR.Languages[:0]
	for _, lang := range c.OCR.Languages {
		if lang = strings.TrimSpace(lang); lang != "" {
			langs = append(langs, lang)
		}
	}
	c.OCR.Languages = langs

	var err error
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

// Pipeline converts the pipeline sections into a readorder.Config.
// The config must have passed Validate.
func (c *Config) Pipeline() readorder.Config {
	mode, _ := text.ParseMode(c.Direction.Mode)
	form, _ := text.ParseNormalizationForm(c.Text.Normalization)

	return readorder.Config{
		Clustering: cluster.Config{
			Epsilon:   c.Clustering.Epsilon,
			MinPoints: c.Clustering.MinPoints,
		},
		Direction: text.DirectionConfig{
			Mode:                    mode,
			MinAspectRatio:          c.Direction.MinAspectRatio,
			ShortTextRelaxation:     c.Direction.ShortTextRelaxation,
			VerticalThreshold:       c.Direction.VerticalThreshold,
			StrongVerticalThreshold: c.Direction.StrongVerticalThreshold,
			MinBlockSize:            c.Direction.MinBlockSize,
			SizeRatio:               c.Direction.SizeRatio,
		},
		Tolerances: layout.ToleranceTable{
			Horizontal: c.Tolerance.Horizontal.ratios(),
			Vertical:   c.Tolerance.Vertical.ratios(),
		},
		Image: layout.ImageEstimateConfig{
			Inflation: c.Image.Inflation,
			MinWidth:  c.Image.MinWidth,
			MinHeight: c.Image.MinHeight,
		},
		Normalization: form,
	}
}

func (r ToleranceRatios) ratios() layout.ToleranceRatios {
	return layout.ToleranceRatios{
		ClusterX: r.ClusterX,
		ClusterY: r.ClusterY,
		BlockX:   r.BlockX,
		BlockY:   r.BlockY,
	}
}

// OCRConfig converts the [ocr] section into an ocr.Config.
func (c *Config) OCRConfig() ocr.Config {
	level, _ := ocr.ParseLevel(c.OCR.Level)
	return ocr.Config{
		Languages:     append([]string(nil), c.OCR.Languages...),
		Level:         level,
		PageSegMode:   ocr.PageSegMode(c.OCR.PageSegMode),
		MaxImageSize:  c.OCR.MaxImageSize,
		MinConfidence: c.OCR.MinConfidence,
	}
}

// Processor returns a readorder.Processor configured from c.
func (c *Config) Processor() *readorder.Processor {
	level, _ := hocr.ParseLevel(c.OCR.Level)
	return readorder.NewWithConfig(c.Pipeline()).
		OCR(c.OCRConfig()).
		HOCRLevel(level)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders c as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
