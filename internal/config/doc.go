// Package config loads, normalizes, and validates readorder configuration.
//
// It supplies defaults for every pipeline knob, reads TOML files from
// ~/.config/readorder/config.toml or ./readorder.toml, expands user paths,
// and converts the result into the readorder.Config and ocr.Config values the
// library consumes.
package config
