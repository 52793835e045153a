package config

const (
	defaultConfigPath  = "~/.config/readorder/config.toml"
	projectConfigName  = "readorder.toml"
	defaultJournalPath = "~/.local/share/readorder/journal.db"

	defaultEpsilon   = 80.0
	defaultMinPoints = 2

	defaultDirectionMode           = "auto"
	defaultMinAspectRatio          = 1.2
	defaultShortTextRelaxation     = 0.95
	defaultVerticalThreshold       = 0.3
	defaultStrongVerticalThreshold = 0.6
	defaultMinBlockSize            = 10.0
	defaultSizeRatio               = 0.008

	defaultImageInflation = 1.3
	defaultImageMinSide   = 500.0

	defaultNormalization = "nfc"

	defaultOCRLanguage     = "eng"
	defaultOCRLevel        = "word"
	defaultOCRPageSegMode  = 3
	defaultOCRMaxImageSize = 1600

	defaultBatchWorkers = 4

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	defaultLogColor  = "auto"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Clustering: Clustering{
			Epsilon:   defaultEpsilon,
			MinPoints: defaultMinPoints,
		},
		Direction: Direction{
			Mode:                    defaultDirectionMode,
			MinAspectRatio:          defaultMinAspectRatio,
			ShortTextRelaxation:     defaultShortTextRelaxation,
			VerticalThreshold:       defaultVerticalThreshold,
			StrongVerticalThreshold: defaultStrongVerticalThreshold,
			MinBlockSize:            defaultMinBlockSize,
			SizeRatio:               defaultSizeRatio,
		},
		Tolerance: Tolerance{
			Horizontal: ToleranceRatios{ClusterX: 0.10, ClusterY: 0.05, BlockX: 0.05, BlockY: 0.02},
			Vertical:   ToleranceRatios{ClusterX: 0.05, ClusterY: 0.10, BlockX: 0.02, BlockY: 0.02},
		},
		Image: Image{
			Inflation: defaultImageInflation,
			MinWidth:  defaultImageMinSide,
			MinHeight: defaultImageMinSide,
		},
		Text: Text{
			Normalization: defaultNormalization,
		},
		OCR: OCR{
			Languages:    []string{defaultOCRLanguage},
			Level:        defaultOCRLevel,
			PageSegMode:  defaultOCRPageSegMode,
			MaxImageSize: defaultOCRMaxImageSize,
		},
		Batch: Batch{
			Workers: defaultBatchWorkers,
		},
		Journal: Journal{
			Path: defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Color:  defaultLogColor,
		},
	}
}
