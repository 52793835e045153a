// Package batch runs the reading-order pipeline over every supported file in
// a directory.
//
// Files are listed in name order and processed by a bounded pool of workers.
// Each file is an independent pipeline call, so a failure is logged and
// reported in the Summary without stopping the rest of the batch. Results
// keep the input order regardless of completion order.
//
// A Runner can optionally append results through an output.Writer and record
// them in a journal.Store; with Resume set, files whose content hash matches
// the journal are skipped.
package batch
