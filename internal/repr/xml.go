package repr

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/example/go-procrustes/internal/edit"
	"github.com/example/go-procrustes/internal/text"
)

var rootElement = xpath.MustCompile("/*")

// XML is one XML element whose character data is re-tokenized in place.
//
// The element tree is normalized on parse so every element carries at most
// one leading text node (its text) and at most one text node after it (its
// tail): comments and processing instructions are dropped and adjacent
// character data is merged.
type XML struct {
	root      *xmlquery.Node
	segmenter text.Segmenter
}

// ParseXML parses one XML element. A non-nil segmenter lays text and tails out
// one segment per line when rendering.
func ParseXML(line string, segmenter text.Segmenter) (*XML, error) {
	doc, err := xmlquery.Parse(strings.NewReader(line))
	if err != nil {
		return nil, fmt.Errorf("parse xml record: %w: %w", ErrMalformed, err)
	}
	elements := xmlquery.QuerySelectorAll(doc, rootElement)
	if len(elements) != 1 {
		return nil, fmt.Errorf("xml record has %d root elements, want 1: %w", len(elements), ErrMalformed)
	}

	root := elements[0]
	normalize(root)
	return &XML{root: root, segmenter: segmenter}, nil
}

func normalize(n *xmlquery.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case xmlquery.ElementNode:
			normalize(c)
		case xmlquery.TextNode, xmlquery.CharDataNode:
			c.Type = xmlquery.TextNode
		default:
			xmlquery.RemoveFromTree(c)
		}
		c = next
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == xmlquery.TextNode && next != nil && next.Type == xmlquery.TextNode {
			c.Data += next.Data
			xmlquery.RemoveFromTree(next)
			continue
		}
		c = next
	}
}

// textRuns returns the character data below the root in document order,
// which is every element's text followed by its children and its tail.
func (x *XML) textRuns() []*xmlquery.Node {
	var runs []*xmlquery.Node
	var visit func(*xmlquery.Node)
	visit = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.TextNode:
				runs = append(runs, c)
			case xmlquery.ElementNode:
				visit(c)
			}
		}
	}
	visit(x.root)
	return runs
}

// Characters returns the text content of the element without markup.
func (x *XML) Characters() []rune {
	var out []rune
	for _, run := range x.textRuns() {
		out = append(out, []rune(run.Data)...)
	}
	return out
}

// Project replaces every run of character data with the part of forced its
// characters were aligned to. Forced characters without a counterpart join
// the next aligned character, or the last character when none follows.
func (x *XML) Project(forced string, a edit.Alignment) error {
	old := len(x.Characters())
	chars := []rune(forced)
	if err := checkAlignment(a, old, len(chars)); err != nil {
		return fmt.Errorf("project xml record: %w", err)
	}

	if old == 0 {
		// Nothing to redistribute over: the whole line becomes the root text.
		if len(chars) > 0 {
			x.setRootText(forced)
		}
		return nil
	}

	buckets := partition(chars, a, old)
	next := 0
	for _, run := range x.textRuns() {
		n := utf8.RuneCountInString(run.Data)
		run.Data = strings.Join(buckets[next:next+n], "")
		next += n
	}
	return nil
}

// partition gives every one of the old characters the slice of chars that
// replaces it. Unaligned old characters get the empty string.
func partition(chars []rune, a edit.Alignment, old int) []string {
	buckets := make([]string, old)
	cursor := 0
	for _, p := range a {
		buckets[p.Source] = string(chars[cursor : p.Target+1])
		cursor = p.Target + 1
	}
	buckets[old-1] += string(chars[cursor:])
	return buckets
}

func (x *XML) setRootText(s string) {
	if first := x.root.FirstChild; first != nil && first.Type == xmlquery.TextNode {
		first.Data = s
		return
	}
	run := &xmlquery.Node{Type: xmlquery.TextNode, Data: s}
	if first := x.root.FirstChild; first != nil {
		run.Parent, run.NextSibling = x.root, first
		first.PrevSibling = run
		x.root.FirstChild = run
		return
	}
	xmlquery.AddChild(x.root, run)
}

// String serializes the element. Empty elements are written as "<tag />".
func (x *XML) String() string {
	var sb strings.Builder
	x.writeElement(&sb, x.root, 1, 0)
	return sb.String()
}

func (x *XML) writeElement(sb *strings.Builder, el *xmlquery.Node, depth, following int) {
	var (
		content string
		kids    []*xmlquery.Node
	)
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == xmlquery.ElementNode:
			kids = append(kids, c)
		case c.Type == xmlquery.TextNode && len(kids) == 0:
			content = c.Data
		}
	}
	if x.segmenter != nil {
		content = x.layout(content, depth)
		if len(kids) > 0 {
			content += "\n" + tabs(depth)
		} else {
			content += "\n" + tabs(depth-1)
		}
	}

	name := qualifiedName(el.Prefix, el.Data)
	sb.WriteString("<" + name)
	for _, attr := range el.Attr {
		sb.WriteString(" " + qualifiedName(attr.Name.Space, attr.Name.Local))
		sb.WriteString(`="` + attrEscaper.Replace(attr.Value) + `"`)
	}
	if content == "" && len(kids) == 0 {
		sb.WriteString(" />")
	} else {
		sb.WriteString(">" + textEscaper.Replace(content))
		for i, kid := range kids {
			x.writeElement(sb, kid, depth+1, len(kids)-i-1)
		}
		sb.WriteString("</" + name + ">")
	}

	if el == x.root {
		return
	}
	if tail := el.NextSibling; tail != nil && tail.Type == xmlquery.TextNode {
		content := tail.Data
		if x.segmenter != nil {
			outside := tabs(max(0, depth-2))
			if following > 0 {
				outside = tabs(depth - 1)
			}
			content = x.layout(content, depth-1) + "\n" + outside
		}
		sb.WriteString(textEscaper.Replace(content))
	}
}

// layout puts every segment of s on its own line, indented by depth tabs.
func (x *XML) layout(s string, depth int) string {
	var sb strings.Builder
	for _, segment := range x.segmenter(s) {
		sb.WriteString("\n" + tabs(depth) + segment)
	}
	return sb.String()
}

func tabs(n int) string {
	return strings.Repeat("\t", max(0, n))
}

func qualifiedName(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#10;", "\r", "&#13;", "\t", "&#09;",
	)
)
