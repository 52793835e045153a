package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	// Formats Tesseract's own loader handles poorly
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/readorder/text"
)

// PrepareImage decodes an image, downsizes it so its longest side is at most
// maxSize, and re-encodes it as PNG. It returns the PNG bytes and the scale
// factor applied (1 when the image was not resized). maxSize <= 0 disables
// resizing.
func PrepareImage(data []byte, maxSize int) ([]byte, float64, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, 0, fmt.Errorf("decoding image: empty image %dx%d", w, h)
	}

	scale := 1.0
	if longest := max(w, h); maxSize > 0 && longest > maxSize {
		scale = float64(maxSize) / float64(longest)
		nw := max(1, int(math.Round(float64(w)*scale)))
		nh := max(1, int(math.Round(float64(h)*scale)))

		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, 0, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), scale, nil
}

// ScaleFragments returns copies of fragments with every vertex multiplied by factor
func ScaleFragments(fragments []text.TextFragment, factor float64) []text.TextFragment {
	out := make([]text.TextFragment, len(fragments))
	for i, f := range fragments {
		out[i] = f.Scaled(factor)
	}
	return out
}
