package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// CollapseWhitespace trims the string and turns every run of whitespace
// (including newlines inside merged header cells) into a single space.
func CollapseWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Identifier lowercases the text and turns it into an underscore separated
// token, ex. "Credit Cards  (Outstanding)" -> "credit_cards_outstanding".
func Identifier(s string) string {
	s = strings.ToLower(CollapseWhitespace(s))
	s = nonAlnumRegex.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Slug keeps only letters and digits, uppercased. It is the key used to
// compare names that only differ in case, spacing or punctuation.
func Slug(s string) string {
	var out strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(unicode.ToUpper(r))
		}
	}
	return out.String()
}
