package tree

import (
	"strings"
	"unicode/utf8"
)

// Pretty draws the tree with box-drawing characters, root on top and leaves
// on the bottom line:
//
//	   S
//	 ┌─┴─┐
//	 NP  VP
//	 │   │
//	cat sat
func (t *Tree) Pretty() string {
	if t.Root == None {
		return ""
	}
	return t.layout(t.Root).String()
}

func (t *Tree) layout(id NodeID) *canvas {
	c := &canvas{}
	for _, child := range t.nodes[id].Children {
		c.append(t.layout(child))
	}
	c.root(t.nodes[id].Label)
	return c
}

type line struct {
	left int
	text string
}

func (l line) right() int {
	return l.left + utf8.RuneCountInString(l.text)
}

// canvas is a block of indented lines plus the columns where the roots of
// its subtrees sit on the top line.
type canvas struct {
	roots []int
	lines []line
}

func (c *canvas) width() int {
	w := 0
	for _, l := range c.lines {
		w = max(w, l.right())
	}
	return w
}

// root puts label on top of the canvas and joins the current roots into it.
func (c *canvas) root(label string) {
	n := utf8.RuneCountInString(label)
	if len(c.roots) == 0 {
		c.roots = []int{n / 2}
		c.lines = append([]line{{0, label}}, c.lines...)
		return
	}

	first, last := c.roots[0], c.roots[len(c.roots)-1]
	center := (first + last) / 2
	node := line{center - floorHalf(n-1), label}
	if node.left < 0 {
		shift := -node.left
		node.left = 0
		for i := range c.lines {
			c.lines[i].left += shift
		}
		for i := range c.roots {
			c.roots[i] += shift
		}
		first, last, center = first+shift, last+shift, center+shift
	}

	var edge line
	if len(c.roots) == 1 {
		edge = line{first, "│"}
	} else {
		top := make([]rune, last-first+1)
		for i := range top {
			top[i] = '─'
		}
		top[0] = '┌'
		for _, r := range c.roots[1 : len(c.roots)-1] {
			top[r-first] = '┬'
		}
		top[last-first] = '┐'
		i := center - first
		top[i] = joint[top[i]]
		edge = line{first, string(top)}
		c.roots = []int{center}
	}
	c.lines = append([]line{node, edge}, c.lines...)
}

var joint = map[rune]rune{'─': '┴', '┬': '┼', '┌': '├', '┐': '┤'}

// append places other to the right of c as close as the two allow without
// their lines touching.
func (c *canvas) append(other *canvas) {
	w := c.width()

	offset := 0
	if w > 0 {
		minSpace, seen := 0, false
		for i := range min(len(c.lines), len(other.lines)) {
			space := w - c.lines[i].right() + other.lines[i].left
			if !seen || space < minSpace {
				minSpace, seen = space, true
			}
		}
		offset = 1 - minSpace
	}
	offset = max(-1, offset)

	merged := make([]line, 0, max(len(c.lines), len(other.lines)))
	for i := range max(len(c.lines), len(other.lines)) {
		switch {
		case i >= len(c.lines):
			o := other.lines[i]
			merged = append(merged, line{w + offset + o.left, o.text})
		case i >= len(other.lines):
			merged = append(merged, c.lines[i])
		default:
			s, o := c.lines[i], other.lines[i]
			gap := w - s.right() + offset + o.left
			merged = append(merged, line{s.left, s.text + spaces(gap) + o.text})
		}
	}
	c.lines = merged
	for _, r := range other.roots {
		c.roots = append(c.roots, w+offset+r)
	}
}

func (c *canvas) String() string {
	out := make([]string, len(c.lines))
	for i, l := range c.lines {
		out[i] = spaces(l.left) + l.text
	}
	return strings.Join(out, "\n")
}

func spaces(n int) string {
	return strings.Repeat(" ", max(0, n))
}

// floorHalf is n/2 rounded toward negative infinity.
func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}
