package input

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tsawler/readorder/model"
	"github.com/tsawler/readorder/text"
)

// DecodeVision decodes a Google Cloud Vision text detection response, either
// a single AnnotateImageResponse or a batch {"responses": [...]} (first
// response only).
//
// textAnnotations[0] covers the whole image and is skipped; the remaining
// annotations are the word-level fragments. When textAnnotations is absent
// the words of fullTextAnnotation are used instead.
func DecodeVision(data []byte) ([]text.TextFragment, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decoding vision response: invalid JSON")
	}

	root := gjson.ParseBytes(data)
	if responses := root.Get("responses"); responses.Exists() {
		root = responses.Get("0")
	}

	if errMsg := root.Get("error.message"); errMsg.Exists() {
		return nil, fmt.Errorf("vision response error: %s", errMsg.String())
	}

	frags := []text.TextFragment{}

	if annotations := root.Get("textAnnotations").Array(); len(annotations) > 0 {
		start := 0
		if len(annotations) > 1 {
			start = 1
		}
		for _, a := range annotations[start:] {
			frags = append(frags, text.TextFragment{
				Text:       a.Get("description").String(),
				Polygon:    visionPolygon(a.Get("boundingPoly")),
				Confidence: a.Get("confidence").Float(),
			})
		}
		return frags, nil
	}

	root.Get("fullTextAnnotation.pages").ForEach(func(_, page gjson.Result) bool {
		page.Get("blocks").ForEach(func(_, block gjson.Result) bool {
			block.Get("paragraphs").ForEach(func(_, para gjson.Result) bool {
				para.Get("words").ForEach(func(_, word gjson.Result) bool {
					var sb strings.Builder
					word.Get("symbols").ForEach(func(_, sym gjson.Result) bool {
						sb.WriteString(sym.Get("text").String())
						return true
					})
					frags = append(frags, text.TextFragment{
						Text:       sb.String(),
						Polygon:    visionPolygon(word.Get("boundingBox")),
						Confidence: word.Get("confidence").Float(),
					})
					return true
				})
				return true
			})
			return true
		})
		return true
	})

	return frags, nil
}

// visionPolygon reads a BoundingPoly. Vision omits zero coordinates, which
// gjson reports as 0. Vertices with out-of-range coordinates are dropped.
func visionPolygon(poly gjson.Result) model.Polygon {
	vertices := poly.Get("vertices").Array()
	out := make(model.Polygon, 0, len(vertices))
	for _, v := range vertices {
		p := model.Point{X: v.Get("x").Float(), Y: v.Get("y").Float()}
		if !p.IsFinite() {
			continue
		}
		out = append(out, p)
	}
	return out
}
