package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tsawler/readorder"
	"github.com/tsawler/readorder/internal/config"
	"github.com/tsawler/readorder/internal/logging"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
	epsilon   float64
	minPoints int
	direction string
	languages []string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies flags the user set
// on cmd.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		c.applyOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			c.configErr = fmt.Errorf("invalid flags: %w", err)
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("eps") {
		cfg.Clustering.Epsilon = c.flags.epsilon
	}
	if changed("min-points") {
		cfg.Clustering.MinPoints = c.flags.minPoints
	}
	if changed("direction") {
		cfg.Direction.Mode = strings.ToLower(strings.TrimSpace(c.flags.direction))
	}
	if changed("lang") {
		cfg.OCR.Languages = append([]string(nil), c.flags.languages...)
	}
	if changed("log-level") {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(c.flags.logLevel))
	}
	if changed("log-format") {
		cfg.Logging.Format = strings.ToLower(strings.TrimSpace(c.flags.logFormat))
	}
}

func (c *commandContext) processor() *readorder.Processor {
	return c.config.Processor()
}

func (c *commandContext) loggerFor(component string) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		c.logger, c.loggerErr = logging.NewFromConfig(c.config)
	})
	if c.loggerErr != nil {
		return nil, c.loggerErr
	}
	return logging.NewComponentLogger(c.logger, component), nil
}
