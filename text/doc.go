// Package text provides the OCR text fragment type and writing-direction
// analysis.
//
// # Fragments
//
// A [TextFragment] is one recognized unit of text (a word, a line, or a single
// glyph, depending on the recognizer) together with its bounding polygon:
//
//	frag := text.NewFragment("Hello", 0, 0, 50, 20)
//	center := frag.Center()
//	dims := frag.Dimensions()
//
// Geometry helpers never fail; an empty polygon has a zero center and size.
//
// # Direction Analysis
//
// The [DirectionAnalyzer] decides whether text flows horizontally (Western
// lines) or vertically (CJK columns read right to left). Each fragment that is
// large enough votes according to its aspect ratio, weighted by its length and
// area, so a handful of large genuine text blocks outweigh many tiny noise
// boxes:
//
//	analyzer := text.NewDirectionAnalyzer()
//	verdict := analyzer.Analyze(fragments, imageSize)
//	fmt.Println(verdict.Direction, verdict.Confidence)
//
// A forced [Mode] skips the decision and reports [ConfidenceManual]. When no
// fragment survives the size filter the verdict is [Horizontal] with
// [ConfidenceDefault].
//
// # Normalization
//
// [Normalize] applies Unicode normalization to fragment text. [NormNFKC] is
// useful for OCR output that mixes full-width and half-width forms.
package text
