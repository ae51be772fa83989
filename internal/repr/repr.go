// Package repr holds the annotated record formats that can be re-tokenized.
//
// Every format exposes a flat character view of its annotation, accepts a
// character alignment from that view onto a forced line, and redistributes
// the annotation over the forced line's characters.
package repr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/go-procrustes/internal/edit"
	"github.com/example/go-procrustes/internal/text"
)

// ErrMalformed is returned for records that cannot be parsed.
var ErrMalformed = errors.New("malformed record")

// Representation is one parsed record. It is projected at most once and is
// not safe for concurrent use.
type Representation interface {
	// Characters returns the alignable character view of the record.
	Characters() []rune
	// Project moves the annotation onto forced, guided by an alignment from
	// Characters() to the runes of forced.
	Project(forced string, a edit.Alignment) error
	// String renders the record in its input format.
	String() string
}

// Mode selects a record format.
type Mode int

const (
	ModeWord Mode = iota
	ModeTree
	ModeXML
)

func (m Mode) String() string {
	switch m {
	case ModeWord:
		return "word"
	case ModeTree:
		return "tree"
	case ModeXML:
		return "xml"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a mode name. "align" is accepted for word alignments.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "word", "align":
		return ModeWord, nil
	case "tree":
		return ModeTree, nil
	case "xml":
		return ModeXML, nil
	default:
		return 0, fmt.Errorf("mode %q (expected word|tree|xml): %w", name, errors.ErrUnsupported)
	}
}

// Options tune record parsing and rendering.
type Options struct {
	// Flip swaps the source and target sides of word alignments.
	Flip bool
	// Segmenter, when set, lays XML text out one segment per line.
	Segmenter text.Segmenter
}

// New parses line as a record of the given mode.
func New(mode Mode, line string, opts Options) (Representation, error) {
	switch mode {
	case ModeWord:
		return ParseWord(line, opts.Flip)
	case ModeTree:
		return ParseTree(line)
	case ModeXML:
		return ParseXML(line, opts.Segmenter)
	default:
		return nil, fmt.Errorf("new %s record: %w", mode, errors.ErrUnsupported)
	}
}

// checkAlignment rejects pairs outside an m×n alignment.
func checkAlignment(a edit.Alignment, m, n int) error {
	for _, p := range a {
		if p.Source < 0 || p.Source >= m || p.Target < 0 || p.Target >= n {
			return fmt.Errorf("alignment pair %d-%d outside %d×%d", p.Source, p.Target, m, n)
		}
	}
	return nil
}
