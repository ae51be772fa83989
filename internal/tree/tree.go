// Package tree holds labeled ordered trees in an arena.
//
// Nodes live in a slice owned by the Tree and refer to each other by NodeID,
// so moving a subtree is a splice of child-index slices rather than a
// rewiring of pointers. Nodes that are detached stay in the arena but are no
// longer reachable from Root.
package tree

import (
	"errors"
	"slices"
	"strings"
)

// NodeID addresses a node inside its Tree.
type NodeID int

// None is the NodeID of a missing node (the parent of the root, the root of
// an empty tree).
const None NodeID = -1

// ErrRootDetached is returned when detaching a node that has no parent.
var ErrRootDetached = errors.New("cannot detach a node without parent")

// Span is the half-open character range [Start, End) covered by a node.
type Span struct {
	Start int
	End   int
}

// Node is one labeled tree node.
type Node struct {
	Label    string
	Parent   NodeID
	Children []NodeID
	Span     Span
}

// Tree is an arena of nodes with a designated root.
type Tree struct {
	nodes []Node
	Root  NodeID
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{Root: None}
}

// Add creates a node labeled label and adopts children in order, detaching
// each from its previous parent first.
func (t *Tree) Add(label string, children ...NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{Label: label, Parent: None})
	for _, c := range children {
		t.AppendChild(id, c)
	}
	return id
}

// Node returns the node with the given id. The pointer is invalidated by the
// next Add.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// IsLeaf reports whether id has no children.
func (t *Tree) IsLeaf(id NodeID) bool {
	return len(t.nodes[id].Children) == 0
}

// AppendChild makes child the last child of parent.
func (t *Tree) AppendChild(parent, child NodeID) {
	t.InsertChild(parent, len(t.nodes[parent].Children), child)
}

// InsertChild makes child the i-th child of parent, detaching it from its
// previous parent first. When child was already an earlier child of parent,
// i refers to the position after its removal.
func (t *Tree) InsertChild(parent NodeID, i int, child NodeID) {
	if t.nodes[child].Parent != None {
		_ = t.Detach(child)
	}
	p := &t.nodes[parent]
	i = min(i, len(p.Children))
	p.Children = slices.Insert(p.Children, i, child)
	t.nodes[child].Parent = parent
}

// DeleteChild removes the i-th child of parent. The removed subtree stays
// intact but becomes unreachable.
func (t *Tree) DeleteChild(parent NodeID, i int) {
	p := &t.nodes[parent]
	child := p.Children[i]
	p.Children = slices.Delete(p.Children, i, i+1)
	t.nodes[child].Parent = None
}

// Detach removes id from its parent.
func (t *Tree) Detach(id NodeID) error {
	parent := t.nodes[id].Parent
	if parent == None {
		return ErrRootDetached
	}
	t.DeleteChild(parent, slices.Index(t.nodes[parent].Children, id))
	return nil
}

// DeleteClean detaches id and then every ancestor left without children.
// It returns ErrRootDetached when the cleanup reaches the root.
func (t *Tree) DeleteClean(id NodeID) error {
	parent := t.nodes[id].Parent
	if err := t.Detach(id); err != nil {
		return err
	}
	if len(t.nodes[parent].Children) == 0 {
		return t.DeleteClean(parent)
	}
	return nil
}

// BottomUp returns the nodes reachable from Root in post-order: every node
// after all of its descendants, leaves left to right.
func (t *Tree) BottomUp() []NodeID {
	if t.Root == None {
		return nil
	}
	var out []NodeID
	var visit func(NodeID)
	visit = func(id NodeID) {
		for _, c := range t.nodes[id].Children {
			visit(c)
		}
		out = append(out, id)
	}
	visit(t.Root)
	return out
}

// Leaves returns the reachable leaves left to right.
func (t *Tree) Leaves() []NodeID {
	var out []NodeID
	for _, id := range t.BottomUp() {
		if t.IsLeaf(id) {
			out = append(out, id)
		}
	}
	return out
}

// String renders the tree in bracketed form, e.g. "(S (NP a) (VP b))".
func (t *Tree) String() string {
	if t.Root == None {
		return ""
	}
	var sb strings.Builder
	t.write(&sb, t.Root)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder, id NodeID) {
	n := &t.nodes[id]
	if len(n.Children) == 0 {
		sb.WriteString(n.Label)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Label)
	for _, c := range n.Children {
		sb.WriteByte(' ')
		t.write(sb, c)
	}
	sb.WriteByte(')')
}
