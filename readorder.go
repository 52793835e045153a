// Package readorder reconstructs reading order from OCR text fragments.
//
// OCR engines return words or lines with bounding polygons but no notion of
// which comes first. This package clusters fragments into lines (horizontal
// text) or columns (vertical CJK text), orders them the way a reader would,
// and joins them into one string.
//
// Basic usage:
//
//	res := readorder.Cluster(fragments, readorder.DefaultConfig())
//	fmt.Println(res.FullText)
//	if len(res.Warnings) > 0 {
//	    log.Println("Warnings:", readorder.FormatWarnings(res.Warnings))
//	}
//
// With options:
//
//	res := readorder.New().
//	    Epsilon(60).
//	    Direction(text.ModeVertical).
//	    Process(fragments)
//
// From a file (fragment JSON, Cloud Vision JSON, hOCR, or an image when
// built with -tags ocr):
//
//	res, err := readorder.New().ProcessFile(ctx, "page.json")
//
// The pipeline itself never returns an error: empty input, degenerate
// polygons and ambiguous direction all degrade to a best-effort result.
package readorder

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := readorder.Must(readorder.New().ProcessFile(ctx, "page.json"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
