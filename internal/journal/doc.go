// Package journal records processed files in a SQLite database so batch runs
// can resume without re-clustering unchanged inputs.
//
// Each entry is keyed by file path and stores the SHA-256 of the file
// content, the direction verdict and the assembled text, along with the id of
// the run that produced it. Runs are identified by UUIDs.
package journal
