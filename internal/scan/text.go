package scan

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text heuristics over raw description markup. These operate on the HTML
// source, not a parsed DOM: the counts are compatibility contracts with
// the original scanner, not semantic HTML analysis.

var (
	tagRE        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRE = regexp.MustCompile(`\s+`)
	lineBreakRE  = regexp.MustCompile(`(?i)<br\s*/?>`)
	bulletRE     = regexp.MustCompile(`^[-*\x{2022}]\s`)
	listItemRE   = regexp.MustCompile(`(?i)^<\s*li\s*>`)
)

// stripTags removes markup tags and collapses whitespace. Text is
// NFC-normalized first so visually identical descriptions tokenize the
// same regardless of the upstream encoder.
func stripTags(html string) string {
	text := norm.NFC.String(html)
	text = tagRE.ReplaceAllString(text, " ")
	text = whitespaceRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// wordCount counts non-empty whitespace-separated tokens after markup is
// stripped. A description with no text counts 0.
func wordCount(html string) int {
	text := stripTags(html)
	if text == "" {
		return 0
	}
	return len(strings.Fields(text))
}

// bulletCount counts lines that start with a bullet-like prefix: "-",
// "*", the bullet glyph, or an <li> tag open. Line-break tags become
// newlines first. Heuristic on raw markup.
func bulletCount(html string) int {
	fragment := lineBreakRE.ReplaceAllString(html, "\n")
	count := 0
	for _, line := range strings.Split(fragment, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if bulletRE.MatchString(line) || listItemRE.MatchString(line) {
			count++
		}
	}
	return count
}
