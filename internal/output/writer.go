package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/tsawler/readorder"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	noText          = "[No text detected]"
	noResults       = "No results to write."
)

// Options controls where results are written.
type Options struct {
	// Dir is the output directory; empty uses the parent of the input directory
	Dir string

	// WriteJSON also writes one JSON result file per input
	WriteJSON bool

	// Now overrides the clock used for run headers
	Now func() time.Time
}

// Item is one named result in a run.
type Item struct {
	Name   string
	Result *readorder.Result
}

// Writer appends results for one input directory.
type Writer struct {
	dir       string
	base      string
	writeJSON bool
	now       func() time.Time
}

// New creates a Writer for results from inputDir, creating the output
// directory if needed.
func New(inputDir string, opts Options) (*Writer, error) {
	cleaned := filepath.Clean(inputDir)
	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		abs, err := filepath.Abs(cleaned)
		if err != nil {
			return nil, fmt.Errorf("resolve input directory: %w", err)
		}
		base = filepath.Base(abs)
	}

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Dir(cleaned)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Writer{dir: dir, base: base, writeJSON: opts.WriteJSON, now: now}, nil
}

// TextPath returns the path of the appended text file.
func (w *Writer) TextPath() string {
	return filepath.Join(w.dir, w.base+"_text.txt")
}

// JSONDir returns the directory holding per-file JSON results.
func (w *Writer) JSONDir() string {
	return filepath.Join(w.dir, w.base+"_json")
}

// AppendRun appends a run header and one section per item to the text file,
// then writes JSON results when enabled. Items with a nil Result are written
// as having no text.
func (w *Writer) AppendRun(items []Item) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n\n===== RUN: %s =====\n\n", w.now().Format(timestampLayout))
	if len(items) == 0 {
		b.WriteString(noResults)
		b.WriteByte('\n')
	}
	for _, item := range items {
		fmt.Fprintf(&b, "===== %s =====\n", item.Name)
		text := ""
		if item.Result != nil {
			text = item.Result.FullText
		}
		if text == "" {
			text = noText
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	if err := w.appendLocked(w.TextPath(), b.String()); err != nil {
		return err
	}

	if !w.writeJSON {
		return nil
	}
	for _, item := range items {
		if item.Result == nil {
			continue
		}
		if err := w.WriteJSON(item.Name, item.Result); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes res to <JSONDir>/<name>.json, replacing any previous file.
func (w *Writer) WriteJSON(name string, res *readorder.Result) error {
	dir := w.JSONDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create json directory: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result %s: %w", name, err)
	}
	data = append(data, '\n')

	target := filepath.Join(dir, filepath.Base(name)+".json")
	tmp, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", target, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", target, err)
	}
	return nil
}

func (w *Writer) appendLocked(path, content string) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		return fmt.Errorf("append %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
