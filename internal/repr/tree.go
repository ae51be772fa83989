package repr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/go-procrustes/internal/edit"
	"github.com/example/go-procrustes/internal/tree"
)

// Tree is a bracketed constituency tree. Its characters are the leaf labels
// joined by single spaces and every node records the span it covers.
type Tree struct {
	tree  *tree.Tree
	chars []rune
}

// ParseTree parses a bracketed tree and computes node spans bottom-up.
func ParseTree(line string) (*Tree, error) {
	t, err := tree.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var leaves []string
	next := 0
	for _, id := range t.BottomUp() {
		n := t.Node(id)
		if t.IsLeaf(id) {
			if len(leaves) > 0 {
				next++
			}
			width := len([]rune(n.Label))
			n.Span = tree.Span{Start: next, End: next + width}
			next += width
			leaves = append(leaves, n.Label)
			continue
		}
		first, last := t.Node(n.Children[0]), t.Node(n.Children[len(n.Children)-1])
		n.Span = tree.Span{Start: first.Span.Start, End: last.Span.End}
	}
	return &Tree{tree: t, chars: []rune(strings.Join(leaves, " "))}, nil
}

// Characters returns the leaf labels joined by single spaces.
func (t *Tree) Characters() []rune {
	return t.chars
}

// Span returns the character span of the node id.
func (t *Tree) Span(id tree.NodeID) tree.Span {
	return t.tree.Node(id).Span
}

// Nodes exposes the parsed tree.
func (t *Tree) Nodes() *tree.Tree {
	return t.tree
}

// Project is not supported for trees: how a re-tokenized leaf sequence
// should reshape the constituents above it is undecided.
func (t *Tree) Project(string, edit.Alignment) error {
	return fmt.Errorf("project tree record: %w", errors.ErrUnsupported)
}

// String renders the tree in bracketed form.
func (t *Tree) String() string {
	return t.tree.String()
}
