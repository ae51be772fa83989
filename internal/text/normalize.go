package text

import (
	"regexp"
	"strings"
)

var (
	lineBreaks = regexp.MustCompile(`[\r\n\t]+`)
	spaceRuns  = regexp.MustCompile(`\s{2,}`)
)

// CollapseSpace prepares a forced-tokenization line for alignment.
// Every run of whitespace becomes a single space and surrounding whitespace
// is dropped, so tokens are exactly the space-separated fields.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Flatten turns a whole multi-line document into one line.
// Line breaks and tabs become spaces, then runs of two or more whitespace
// characters shrink to one space. Leading and trailing space is kept.
func Flatten(s string) string {
	s = lineBreaks.ReplaceAllString(s, " ")
	return spaceRuns.ReplaceAllString(s, " ")
}
