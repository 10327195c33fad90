package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// the page renders times and prices with these instead of plain spaces
var spaceReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\u202f", " ",
	"\u2009", " ",
	"\u200b", "",
	"\ufeff", "",
)

// Collapse applies NFKC, turns non-breaking spaces into regular ones and
// squeezes every run of whitespace into a single space.
func Collapse(text string) string {
	text = norm.NFKC.String(text)
	text = spaceReplacer.Replace(text)
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
