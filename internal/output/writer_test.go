package output_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tsawler/readorder"
	"github.com/tsawler/readorder/internal/output"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
}

func TestAppendRunLayout(t *testing.T) {
	root := t.TempDir()
	w, err := output.New(filepath.Join(root, "chapter1"), output.Options{Dir: filepath.Join(root, "out"), Now: fixedClock})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if want := filepath.Join(root, "out", "chapter1_text.txt"); w.TextPath() != want {
		t.Fatalf("TextPath = %q, want %q", w.TextPath(), want)
	}

	items := []output.Item{
		{Name: "001.png", Result: &readorder.Result{FullText: "一二三\nあいう"}},
		{Name: "002.png", Result: &readorder.Result{}},
		{Name: "003.png"},
	}
	if err := w.AppendRun(items); err != nil {
		t.Fatalf("AppendRun returned error: %v", err)
	}

	got, err := os.ReadFile(w.TextPath())
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "\n\n===== RUN: 2026-03-04 05:06:07 =====\n\n" +
		"===== 001.png =====\n一二三\nあいう\n\n" +
		"===== 002.png =====\n[No text detected]\n\n" +
		"===== 003.png =====\n[No text detected]\n\n"
	if string(got) != want {
		t.Errorf("output =\n%q\nwant\n%q", got, want)
	}
}

func TestAppendRunAppends(t *testing.T) {
	root := t.TempDir()
	w, err := output.New(filepath.Join(root, "pages"), output.Options{Now: fixedClock})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if filepath.Dir(w.TextPath()) != root {
		t.Fatalf("default output dir should be the input's parent, got %q", w.TextPath())
	}

	if err := w.AppendRun(nil); err != nil {
		t.Fatalf("AppendRun returned error: %v", err)
	}
	if err := w.AppendRun([]output.Item{{Name: "a.json", Result: &readorder.Result{FullText: "x"}}}); err != nil {
		t.Fatalf("AppendRun returned error: %v", err)
	}

	got, _ := os.ReadFile(w.TextPath())
	content := string(got)
	if strings.Count(content, "===== RUN:") != 2 {
		t.Errorf("expected two run headers, got:\n%s", content)
	}
	if !strings.Contains(content, "No results to write.\n") {
		t.Errorf("empty run should say so, got:\n%s", content)
	}
}

func TestAppendRunConcurrentWritersDoNotInterleave(t *testing.T) {
	root := t.TempDir()
	const writers = 8

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := output.New(filepath.Join(root, "pages"), output.Options{Now: fixedClock})
			if err != nil {
				errs <- err
				return
			}
			errs <- w.AppendRun([]output.Item{{Name: "p.json", Result: &readorder.Result{FullText: strings.Repeat("z", 4096)}}})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("AppendRun returned error: %v", err)
		}
	}

	got, _ := os.ReadFile(filepath.Join(root, "pages_text.txt"))
	sections := strings.Split(string(got), "\n\n===== RUN: ")
	if len(sections) != writers+1 {
		t.Fatalf("expected %d runs, got %d", writers, len(sections)-1)
	}
	for _, s := range sections[1:] {
		if !strings.Contains(s, "===== p.json =====\n"+strings.Repeat("z", 4096)+"\n\n") {
			t.Fatal("run section was interleaved")
		}
	}
}

func TestWriteJSON(t *testing.T) {
	root := t.TempDir()
	w, err := output.New(filepath.Join(root, "pages"), output.Options{WriteJSON: true, Now: fixedClock})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	res := &readorder.Result{FullText: "Hello World", ProcessingMethod: readorder.MethodDBSCAN}
	if err := w.AppendRun([]output.Item{{Name: "scan.png", Result: res}, {Name: "missing.png"}}); err != nil {
		t.Fatalf("AppendRun returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(w.JSONDir(), "scan.png.json"))
	if err != nil {
		t.Fatalf("read json result: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode json result: %v", err)
	}
	if decoded["fullText"] != "Hello World" {
		t.Errorf("fullText = %v", decoded["fullText"])
	}
	if _, err := os.Stat(filepath.Join(w.JSONDir(), "missing.png.json")); !os.IsNotExist(err) {
		t.Errorf("nil results should not produce JSON files, stat err = %v", err)
	}
}
