// Package format provides input format detection for the readorder tools.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// FragmentsJSON indicates a JSON array of {text, boundingPolygon} fragments.
	FragmentsJSON
	// VisionJSON indicates a Google Cloud Vision text detection response.
	VisionJSON
	// HOCR indicates Tesseract hOCR output.
	HOCR
	// Image indicates a raster image that needs OCR first.
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FragmentsJSON:
		return "FragmentsJSON"
	case VisionJSON:
		return "VisionJSON"
	case HOCR:
		return "hOCR"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FragmentsJSON, VisionJSON:
		return ".json"
	case HOCR:
		return ".hocr"
	case Image:
		return ".png"
	default:
		return ""
	}
}

// NeedsOCR reports whether the format must be run through OCR to obtain fragments.
func (f Format) NeedsOCR() bool {
	return f == Image
}

// imageExtensions lists the raster formats the OCR path can decode.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Detect determines file format from filename extension.
// A .json file is reported as FragmentsJSON; use DetectFromMagic or
// DetectFile to tell Vision responses apart.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".json":
		return FragmentsJSON
	case ext == ".hocr" || ext == ".html" || ext == ".htm":
		return HOCR
	case imageExtensions[ext]:
		return Image
	default:
		return Unknown
	}
}

// IsSupported reports whether filename has an extension the tools accept.
func IsSupported(filename string) bool {
	return Detect(filename) != Unknown
}

// DetectFromMagic checks content signatures to determine format.
// Returns Unknown if the format cannot be determined from content alone.
func DetectFromMagic(data []byte) Format {
	if isImageMagic(data) {
		return Image
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return Unknown
	}

	switch trimmed[0] {
	case '[':
		return FragmentsJSON
	case '{':
		head := trimmed[:min(len(trimmed), 4096)]
		if bytes.Contains(head, []byte(`"textAnnotations"`)) ||
			bytes.Contains(head, []byte(`"fullTextAnnotation"`)) ||
			bytes.Contains(head, []byte(`"responses"`)) {
			return VisionJSON
		}
		return FragmentsJSON
	case '<':
		if detectHOCRMagic(trimmed) {
			return HOCR
		}
	}

	return Unknown
}

// DetectFile combines content and extension detection. Content wins when it
// is conclusive; the extension is the fallback.
func DetectFile(filename string, data []byte) Format {
	if f := DetectFromMagic(data); f != Unknown {
		return f
	}
	return Detect(filename)
}

// isImageMagic checks for PNG, JPEG, GIF, BMP, TIFF and WebP signatures.
func isImageMagic(data []byte) bool {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return true
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return true
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return true
	case bytes.HasPrefix(data, []byte("BM")) && len(data) >= 14:
		return true
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return true
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return true
	}
	return false
}

// detectHOCRMagic checks if markup looks like hOCR: HTML carrying
// ocr_page, ocr_line or ocrx_word classes.
func detectHOCRMagic(data []byte) bool {
	head := strings.ToLower(string(data[:min(len(data), 8192)]))
	if !strings.Contains(head, "<html") && !strings.Contains(head, "<!doctype") && !strings.Contains(head, "<?xml") {
		return false
	}
	return strings.Contains(head, "ocr_page") ||
		strings.Contains(head, "ocr_line") ||
		strings.Contains(head, "ocrx_word") ||
		strings.Contains(head, "ocr-system")
}
