// Package layout breaks free-form overlay text into display lines that fit a
// maximum rendered width under a fixed font and size.
package layout

import "strings"

// Measurer reports the rendered width of a string at a font size.
type Measurer interface {
	Advance(s string, size float64) float64
}

// Line is one wrap result entry. A Gap entry marks a blank source line and
// consumes vertical space without a text draw.
type Line struct {
	Text string
	Gap  bool
}

// Wrap splits text on explicit line breaks, then greedily packs the words of
// each paragraph into lines whose measured width stays within maxWidth. A
// blank source line becomes a single gap marker. A word that alone exceeds
// maxWidth is emitted as its own line; it is not hyphenated and the font is
// never shrunk to fit.
//
// Wrap is pure: identical arguments always yield the identical sequence.
func Wrap(text string, maxWidth float64, m Measurer, size float64) []Line {
	var lines []Line
	for _, paragraph := range strings.Split(text, "\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			lines = append(lines, Line{Gap: true})
			continue
		}
		current := ""
		for _, word := range strings.Fields(paragraph) {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if m.Advance(candidate, size) <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, Line{Text: current})
			}
			current = word
		}
		if current != "" {
			lines = append(lines, Line{Text: current})
		}
	}
	return lines
}
