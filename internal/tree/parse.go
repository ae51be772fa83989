package tree

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// bracketLexer splits Lisp-style trees. An opening bracket carries the label
// written directly after it, so "( NP" opens an unlabeled node whose first
// child is the leaf "NP".
var bracketLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Open", Pattern: `\([^\s()]*`},
	{Name: "Close", Pattern: `\)`},
	{Name: "Atom", Pattern: `[^\s()]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

//nolint:govet // participle grammar tags are not standard struct tags
type bracketNode struct {
	Interior *bracketInterior `  @@`
	Leaf     *string          `| @Atom`
}

//nolint:govet // participle grammar tags are not standard struct tags
type bracketInterior struct {
	Open     string         `@Open`
	Children []*bracketNode `@@* ")"`
}

var bracketParser = participle.MustBuild[bracketNode](
	participle.Lexer(bracketLexer),
	participle.Elide("Whitespace"),
)

// Parse reads one bracketed tree such as "(S (NP (DT the) (NN cat)) (VP sat))".
// A bracket with no children, like "(X)", becomes a leaf labeled X. Blank
// input yields an empty tree.
func Parse(s string) (*Tree, error) {
	s = strings.TrimSpace(s)
	t := New()
	if s == "" {
		return t, nil
	}

	parsed, err := bracketParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse tree: %w", err)
	}
	t.Root = t.build(parsed)
	return t, nil
}

func (t *Tree) build(n *bracketNode) NodeID {
	if n.Interior == nil {
		return t.Add(*n.Leaf)
	}
	children := make([]NodeID, 0, len(n.Interior.Children))
	for _, c := range n.Interior.Children {
		children = append(children, t.build(c))
	}
	return t.Add(strings.TrimPrefix(n.Interior.Open, "("), children...)
}
