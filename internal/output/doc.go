// Package output appends batch results to per-directory text files.
//
// For an input directory named pages, results go to pages_text.txt in the
// output directory. Each run starts with a "===== RUN: <timestamp> ====="
// header followed by one "===== <file> =====" section per input. Appends are
// guarded by an advisory file lock so concurrent runs never interleave. When
// JSON output is enabled, each result is also written to
// pages_json/<file>.json.
package output
