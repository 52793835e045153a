// Package hocr reads Tesseract hOCR output into text fragments.
package hocr

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/readorder/model"
	"github.com/tsawler/readorder/text"
)

// Level selects the granularity of the fragments read from hOCR.
type Level int

const (
	// LevelWord yields one fragment per ocrx_word span
	LevelWord Level = iota
	// LevelLine yields one fragment per ocr_line span, words joined by spaces
	LevelLine
)

// String returns the configuration name of the level
func (l Level) String() string {
	if l == LevelLine {
		return "line"
	}
	return "word"
}

// ParseLevel converts "word" or "line" into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "word":
		return LevelWord, nil
	case "line":
		return LevelLine, nil
	default:
		return LevelWord, fmt.Errorf("unknown hOCR level %q (want word or line)", s)
	}
}

// Page is one ocr_page element
type Page struct {
	// BBox is the page box from its title attribute; zero when absent
	BBox model.BBox

	Words []text.TextFragment
	Lines []text.TextFragment
}

// Reader provides access to parsed hOCR content.
type Reader struct {
	pages []Page
}

// Open opens an hOCR file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses hOCR from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	reader := &Reader{}
	reader.walk(doc, -1)
	return reader, nil
}

// Parse reads all fragments at the given level from r.
func Parse(r io.Reader, level Level) ([]text.TextFragment, error) {
	reader, err := OpenReader(r)
	if err != nil {
		return nil, err
	}
	return reader.Fragments(level), nil
}

// PageCount returns the number of ocr_page elements.
func (r *Reader) PageCount() int {
	return len(r.pages)
}

// Pages returns the parsed pages.
func (r *Reader) Pages() []Page {
	return r.pages
}

// Fragments returns the fragments of every page at the given level, in
// document order.
func (r *Reader) Fragments(level Level) []text.TextFragment {
	var out []text.TextFragment
	for _, p := range r.pages {
		if level == LevelLine {
			out = append(out, p.Lines...)
		} else {
			out = append(out, p.Words...)
		}
	}
	return out
}

// PageSize returns the size of page i from its bbox, or a zero size.
func (r *Reader) PageSize(i int) model.Size {
	if i < 0 || i >= len(r.pages) {
		return model.Size{}
	}
	b := r.pages[i].BBox
	return model.Size{Width: b.Width, Height: b.Height}
}

// walk visits the tree; page is the index of the ocr_page currently open,
// or -1.
func (r *Reader) walk(n *html.Node, page int) {
	if n.Type == html.ElementNode {
		classes := classList(n)
		switch {
		case classes["ocr_page"]:
			props := parseTitle(attr(n, "title"))
			r.pages = append(r.pages, Page{BBox: props.bbox})
			page = len(r.pages) - 1
		case isLineClass(classes):
			r.addLine(n, r.pageIndex(page))
			return
		case classes["ocrx_word"] || classes["ocr_word"]:
			if w, ok := wordFragment(n); ok {
				p := &r.pages[r.pageIndex(page)]
				p.Words = append(p.Words, w)
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c, page)
	}
}

// pageIndex returns page, creating an implicit page for content outside any
// ocr_page element.
func (r *Reader) pageIndex(page int) int {
	if page >= 0 {
		return page
	}
	if len(r.pages) == 0 {
		r.pages = append(r.pages, Page{})
	}
	return len(r.pages) - 1
}

func (r *Reader) addLine(n *html.Node, pageIdx int) {
	page := &r.pages[pageIdx]
	var words []text.TextFragment
	collectWords(n, &words)
	page.Words = append(page.Words, words...)

	props := parseTitle(attr(n, "title"))
	if !props.hasBBox {
		return
	}

	var lineText string
	if len(words) > 0 {
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = w.Text
		}
		lineText = strings.Join(parts, " ")
	} else {
		lineText = textContent(n)
	}
	if lineText == "" {
		return
	}

	page.Lines = append(page.Lines, text.TextFragment{
		Text:       lineText,
		Polygon:    props.bbox.Polygon(),
		Confidence: meanConfidence(words),
	})
}

func collectWords(n *html.Node, words *[]text.TextFragment) {
	if n.Type == html.ElementNode {
		classes := classList(n)
		if classes["ocrx_word"] || classes["ocr_word"] {
			if w, ok := wordFragment(n); ok {
				*words = append(*words, w)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectWords(c, words)
	}
}

func wordFragment(n *html.Node) (text.TextFragment, bool) {
	props := parseTitle(attr(n, "title"))
	s := textContent(n)
	if !props.hasBBox || s == "" {
		return text.TextFragment{}, false
	}
	return text.TextFragment{
		Text:       s,
		Polygon:    props.bbox.Polygon(),
		Confidence: props.confidence,
	}, true
}

func meanConfidence(words []text.TextFragment) float64 {
	if len(words) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}

func isLineClass(classes map[string]bool) bool {
	return classes["ocr_line"] || classes["ocr_caption"] || classes["ocr_textfloat"] || classes["ocr_header"]
}

// titleProps holds the properties read from an hOCR title attribute
type titleProps struct {
	bbox       model.BBox
	hasBBox    bool
	confidence float64
}

// parseTitle reads "bbox x0 y0 x1 y1; x_wconf 95" style properties.
// Confidence is scaled to [0, 1].
func parseTitle(title string) titleProps {
	var props titleProps
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "bbox":
			if len(fields) != 5 {
				continue
			}
			var v [4]float64
			ok := true
			for i := 0; i < 4; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
					ok = false
					break
				}
				v[i] = f
			}
			if ok {
				props.bbox = model.NewBBoxFromPoints(model.Point{X: v[0], Y: v[1]}, model.Point{X: v[2], Y: v[3]})
				props.hasBBox = true
			}
		case "x_wconf":
			if len(fields) == 2 {
				if f, err := strconv.ParseFloat(fields[1], 64); err == nil {
					props.confidence = f / 100
				}
			}
		}
	}
	return props
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func classList(n *html.Node) map[string]bool {
	classes := make(map[string]bool)
	for _, c := range strings.Fields(attr(n, "class")) {
		classes[c] = true
	}
	return classes
}

// textContent extracts all text content from a node and its descendants.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return strings.TrimSpace(sb.String())
}
