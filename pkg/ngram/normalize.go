package ngram

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Whitespace for cleaned text is the ASCII set a unicode-aware \s matches,
// which is wider than RE2's \s (it adds \v and the \x1c-\x1f separators).
const asciiSpace = `\t\n\v\f\r \x1c-\x1f`

var (
	lineBreaks  = regexp.MustCompile("[\n\r\t\u00a0]")
	punctuation = regexp.MustCompile(`[^A-Za-z0-9_` + asciiSpace + `.]`)
	stops       = regexp.MustCompile(`[._]`)
	digits      = regexp.MustCompile(`[0-9]`)
	spaceRuns   = regexp.MustCompile(`[` + asciiSpace + `]+`)
)

// Normalize cleans raw corpus text into lowercase words separated by single spaces.
// Applying it to its own output returns the input unchanged.
func Normalize(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= utf8.RuneSelf {
			return -1
		}
		return r
	}, text)

	cleaned = lineBreaks.ReplaceAllString(cleaned, " ")
	cleaned = strings.ReplaceAll(cleaned, "?", "")
	cleaned = punctuation.ReplaceAllString(cleaned, "")
	cleaned = stops.ReplaceAllString(cleaned, "")
	cleaned = digits.ReplaceAllString(cleaned, "")
	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = strings.Trim(cleaned, " ")

	return strings.ToLower(cleaned)
}

// Words splits normalized text on single spaces.
// Text that cleans to nothing yields a single empty word, which training keeps.
func Words(text string) []string {
	return strings.Split(Normalize(text), " ")
}
