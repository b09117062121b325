package layout

import "strings"

// Wrap breaks text into lines no wider than width when drawn with style and
// size. Newlines start new lines; words wider than width are split by rune.
// Blank text returns nil.
func Wrap(m Measurer, text, style string, size, width float64) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	fits := func(s string) bool {
		return width <= 0 || m.StringWidth(s, style, size) <= width
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, word := range words {
			for _, piece := range breakWord(word, fits) {
				candidate := piece
				if line != "" {
					candidate = line + " " + piece
				}
				if fits(candidate) {
					line = candidate
					continue
				}
				if line != "" {
					lines = append(lines, line)
				}
				line = piece
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// breakWord splits word into the fewest rune runs that each fit.
// A single rune that does not fit is kept as its own piece.
func breakWord(word string, fits func(string) bool) []string {
	if fits(word) {
		return []string{word}
	}

	var pieces []string
	runes := []rune(word)
	start := 0
	for start < len(runes) {
		end := start + 1
		for end < len(runes) && fits(string(runes[start:end+1])) {
			end++
		}
		pieces = append(pieces, string(runes[start:end]))
		start = end
	}
	return pieces
}
