package text

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Segmenter splits a run of text into display segments. Concatenating the
// segments yields the input again.
type Segmenter func(s string) []string

// Segmenter names accepted by LookupSegmenter.
const (
	SegmentIdentity            = "identity"
	SegmentDividingPunctuation = "dividing-punctuation"
	SegmentPunctuation         = "punctuation"
)

// DividingPunctuation ends a segment when followed by whitespace.
const DividingPunctuation = ".?!:;"

// asciiPunctuation is every ASCII punctuation character.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Identity keeps the text as a single segment.
func Identity(s string) []string {
	return []string{s}
}

// SplitAfter returns a Segmenter that ends a segment after any of chars when
// it is followed by whitespace. The whitespace stays with the segment it
// follows, and empty segments are dropped.
func SplitAfter(chars string) (Segmenter, error) {
	if chars == "" {
		return nil, fmt.Errorf("segmenter needs at least one delimiter character")
	}

	var class strings.Builder
	for _, r := range chars {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r < unicode.MaxASCII {
			class.WriteByte('\\')
		}
		class.WriteRune(r)
	}
	re, err := regexp.Compile(`[^` + class.String() + `]+[` + class.String() + `]\s+`)
	if err != nil {
		return nil, fmt.Errorf("compile segmenter for %q: %w", chars, err)
	}

	return func(s string) []string {
		var segments []string
		start := 0
		for _, loc := range re.FindAllStringIndex(s, -1) {
			if loc[0] > start {
				segments = append(segments, s[start:loc[0]])
			}
			segments = append(segments, s[loc[0]:loc[1]])
			start = loc[1]
		}
		if start < len(s) {
			segments = append(segments, s[start:])
		}
		return segments
	}, nil
}

// LookupSegmenter resolves a segmenter name. The empty name means no
// segmentation and returns a nil Segmenter.
func LookupSegmenter(name string) (Segmenter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case SegmentIdentity:
		return Identity, nil
	case SegmentDividingPunctuation:
		return SplitAfter(DividingPunctuation)
	case SegmentPunctuation:
		return SplitAfter(asciiPunctuation)
	default:
		return nil, fmt.Errorf("segmenter %q (expected %s|%s|%s): %w",
			name, SegmentDividingPunctuation, SegmentIdentity, SegmentPunctuation, errors.ErrUnsupported)
	}
}
