package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var nonDigitRegex = regexp.MustCompile(`[^0-9]`)

// decoration runes the portal prefixes onto staff names
// (availability markers and the like)
var decorationRegex = regexp.MustCompile(`[○●◎△×☆★※]`)

// NormalizeName folds a human-entered name down to a comparable key:
// NFKC collapses full-width/half-width variants, then whitespace
// (including full-width spaces) and decoration markers are stripped
// and the result is case folded.
func NormalizeName(name string) string {
	name = norm.NFKC.String(name)
	name = width.Fold.String(name)
	name = decorationRegex.ReplaceAllString(name, "")
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// ParseDigits strips every non-digit rune and parses the remainder as
// an integer. A string with no digits parses to 0. This is how prices
// like "¥5,500(税込)" and durations like "60分" come out of the portal.
func ParseDigits(s string) int {
	s = norm.NFKC.String(s)
	s = nonDigitRegex.ReplaceAllString(s, "")
	if s == "" {
		return 0
	}
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// SplitName splits a "surname givenname" pair on the first run of
// whitespace (half or full width). A name with no separator comes back
// with an empty given name.
func SplitName(name string) (string, string) {
	name = strings.TrimSpace(norm.NFKC.String(name))
	parts := whitespaceRegex.Split(name, 2)
	if len(parts) < 2 {
		return name, ""
	}
	return parts[0], parts[1]
}
