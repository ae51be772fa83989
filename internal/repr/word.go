package repr

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/example/go-procrustes/internal/edit"
)

// Word is a word-alignment record: "source\ttarget\ti-j i-j ...".
//
// Links are kept per source character, so a token split or merged by the
// forced line keeps the links of every character it is made of.
type Word struct {
	flip   bool
	chars  []rune
	target []string
	// links[c] lists, sorted, the target tokens linked to source character c.
	links [][]int
}

// ParseWord parses a word-alignment record. With flip the second field is
// treated as the side to re-tokenize.
func ParseWord(line string, flip bool) (*Word, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != 3 {
		return nil, fmt.Errorf("word record has %d fields, want 3: %w", len(fields), ErrMalformed)
	}

	source, target := strings.Fields(fields[0]), strings.Fields(fields[1])
	if flip {
		source, target = target, source
	}

	tokenLinks := make([][]int, len(source))
	for _, link := range strings.Fields(fields[2]) {
		i, j, err := parseLink(link)
		if err != nil {
			return nil, err
		}
		if flip {
			i, j = j, i
		}
		if i >= len(source) || j >= len(target) {
			return nil, fmt.Errorf("link %q outside %d×%d tokens: %w", link, len(source), len(target), ErrMalformed)
		}
		tokenLinks[i] = union(tokenLinks[i], []int{j})
	}

	w := &Word{flip: flip, target: target}
	for i, token := range source {
		if i > 0 {
			w.chars = append(w.chars, ' ')
			w.links = append(w.links, nil)
		}
		for range []rune(token) {
			w.links = append(w.links, tokenLinks[i])
		}
		w.chars = append(w.chars, []rune(token)...)
	}
	return w, nil
}

func parseLink(link string) (int, int, error) {
	a, b, ok := strings.Cut(link, "-")
	if !ok {
		return 0, 0, fmt.Errorf("link %q is not i-j: %w", link, ErrMalformed)
	}
	i, errI := strconv.Atoi(a)
	j, errJ := strconv.Atoi(b)
	if errI != nil || errJ != nil || i < 0 || j < 0 {
		return 0, 0, fmt.Errorf("link %q is not i-j: %w", link, ErrMalformed)
	}
	return i, j, nil
}

// Characters returns the source tokens joined by single spaces, or the
// forced line once projected.
func (w *Word) Characters() []rune {
	return w.chars
}

// Project anchors the links of every aligned source character at its target
// character. Characters that meet in one target character pool their links.
func (w *Word) Project(forced string, a edit.Alignment) error {
	chars := []rune(forced)
	if err := checkAlignment(a, len(w.chars), len(chars)); err != nil {
		return fmt.Errorf("project word record: %w", err)
	}

	links := make([][]int, len(chars))
	for _, p := range a {
		links[p.Target] = union(links[p.Target], w.links[p.Source])
	}
	w.chars, w.links = chars, links
	return nil
}

// String re-derives token links from the character links and renders the
// record, flipped back if it was parsed flipped.
func (w *Word) String() string {
	var (
		tokens []string
		pairs  []string
	)
	for i, span := range tokenSpans(w.chars) {
		tokens = append(tokens, string(w.chars[span[0]:span[1]]))
		var linked []int
		for c := span[0]; c < span[1]; c++ {
			linked = union(linked, w.links[c])
		}
		for _, j := range linked {
			if w.flip {
				pairs = append(pairs, fmt.Sprintf("%d-%d", j, i))
			} else {
				pairs = append(pairs, fmt.Sprintf("%d-%d", i, j))
			}
		}
	}

	source, target := strings.Join(tokens, " "), strings.Join(w.target, " ")
	if w.flip {
		source, target = target, source
	}
	return source + "\t" + target + "\t" + strings.Join(pairs, " ")
}

// tokenSpans returns the [start, end) rune ranges of the whitespace
// separated tokens of chars.
func tokenSpans(chars []rune) [][2]int {
	var spans [][2]int
	start := -1
	for i, r := range chars {
		switch {
		case unicode.IsSpace(r) && start >= 0:
			spans = append(spans, [2]int{start, i})
			start = -1
		case !unicode.IsSpace(r) && start < 0:
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, [2]int{start, len(chars)})
	}
	return spans
}

// union merges two sorted sets into a new sorted set.
func union(a, b []int) []int {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := slices.Concat(a, b)
	slices.Sort(out)
	return slices.Compact(out)
}
