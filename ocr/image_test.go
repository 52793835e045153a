package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/tsawler/readorder/text"
)

// createTestPNG creates a white PNG with a black block for testing.
func createTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := width / 10; x < width/2; x++ {
		for y := height / 5; y < height*3/5; y++ {
			img.Set(x, y, color.Black)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestPrepareImage(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		maxSize   int
		wantW     int
		wantH     int
		wantScale float64
	}{
		{"small image untouched", 100, 50, 1600, 100, 50, 1},
		{"landscape downsized", 400, 200, 100, 100, 50, 0.25},
		{"portrait downsized", 200, 400, 200, 100, 200, 0.5},
		{"resizing disabled", 400, 200, 0, 400, 200, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, scale, err := PrepareImage(createTestPNG(t, tt.w, tt.h), tt.maxSize)
			if err != nil {
				t.Fatalf("PrepareImage() error = %v", err)
			}
			if scale != tt.wantScale {
				t.Errorf("scale = %v, want %v", scale, tt.wantScale)
			}
			if w, h := decodedSize(t, out); w != tt.wantW || h != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPrepareImage_InvalidData(t *testing.T) {
	if _, _, err := PrepareImage([]byte("not an image"), 1600); err == nil {
		t.Error("expected error for invalid image data")
	}
}

func TestScaleFragments(t *testing.T) {
	in := []text.TextFragment{text.NewFragment("a", 10, 20, 30, 40)}
	out := ScaleFragments(in, 2)

	box := out[0].BBox()
	if box.X != 20 || box.Y != 40 || box.Width != 40 || box.Height != 40 {
		t.Errorf("scaled bbox = %+v", box)
	}
	if in[0].BBox().X != 10 {
		t.Error("input fragments must not be modified")
	}
}

// fakeRecognizer returns fixed fragments in prepared-image pixels
type fakeRecognizer struct {
	frags []text.TextFragment
	err   error
	seen  []byte
}

func (f *fakeRecognizer) Recognize(_ context.Context, data []byte) ([]text.TextFragment, error) {
	f.seen = data
	return f.frags, f.err
}

func (f *fakeRecognizer) Close() error { return nil }

func TestExtract_ScalesBack(t *testing.T) {
	rec := &fakeRecognizer{frags: []text.TextFragment{text.NewFragment("x", 10, 10, 20, 20)}}

	frags, err := Extract(context.Background(), rec, createTestPNG(t, 400, 200), 100)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if w, _ := decodedSize(t, rec.seen); w != 100 {
		t.Errorf("recognizer saw width %d, want 100", w)
	}

	box := frags[0].BBox()
	if box.X != 40 || box.Width != 40 {
		t.Errorf("fragment not mapped back to source pixels: %+v", box)
	}
}

func TestExtract_Errors(t *testing.T) {
	boom := errors.New("boom")
	rec := &fakeRecognizer{err: boom}

	if _, err := Extract(context.Background(), rec, createTestPNG(t, 10, 10), 100); !errors.Is(err, boom) {
		t.Errorf("got %v, want recognizer error", err)
	}
	if _, err := Extract(context.Background(), rec, []byte("junk"), 100); err == nil {
		t.Error("expected decode error")
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("LINE"); err != nil || l != LevelLine {
		t.Errorf("ParseLevel(LINE) = %v, %v", l, err)
	}
	if _, err := ParseLevel("block"); err == nil {
		t.Error("expected error for unknown level")
	}
}
