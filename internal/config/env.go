package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvLogLevel     = "READORDER_LOG_LEVEL"
	EnvLogFormat    = "READORDER_LOG_FORMAT"
	EnvLanguages    = "READORDER_OCR_LANGUAGES"
	EnvJournalPath  = "READORDER_JOURNAL_PATH"
	EnvBatchWorkers = "READORDER_BATCH_WORKERS"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookupEnv(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvLanguages); ok {
		c.OCR.Languages = strings.Split(v, ",")
	}
	if v, ok := lookupEnv(EnvJournalPath); ok {
		c.Journal.Path = v
	}
	if v, ok := lookupEnv(EnvBatchWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBatchWorkers, err)
		}
		c.Batch.Workers = n
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
