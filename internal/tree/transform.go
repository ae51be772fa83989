package tree

import (
	"errors"
	"slices"
	"strings"
)

// EmptyLabel marks empty elements (traces, null subjects) in treebank trees.
const EmptyLabel = "-NONE-"

// RemoveEmpty deletes every node labeled EmptyLabel together with the
// ancestors it leaves childless. The tree becomes empty if the root goes.
func (t *Tree) RemoveEmpty() {
	for _, id := range t.BottomUp() {
		if t.nodes[id].Label != EmptyLabel || !t.reachable(id) {
			continue
		}
		if err := t.DeleteClean(id); errors.Is(err, ErrRootDetached) {
			t.Root = None
			return
		}
	}
}

func (t *Tree) reachable(id NodeID) bool {
	for id != None {
		if id == t.Root {
			return true
		}
		id = t.nodes[id].Parent
	}
	return false
}

// RemoveUnit fuses every interior node that has a single interior child
// with that child. The fused node is labeled "PARENT_CHILD".
func (t *Tree) RemoveUnit() {
	for _, id := range t.BottomUp() {
		if len(t.nodes[id].Children) != 1 {
			continue
		}
		child := t.nodes[id].Children[0]
		if t.IsLeaf(child) {
			continue
		}
		t.nodes[id].Label += "_" + t.nodes[child].Label
		_ = t.Detach(child)
		for _, grandchild := range slices.Clone(t.nodes[child].Children) {
			t.AppendChild(id, grandchild)
		}
	}
}

// RestoreUnit undoes RemoveUnit by splitting interior labels on "_" back
// into chains of unary nodes. The tree is rebuilt into a fresh arena.
func (t *Tree) RestoreUnit() {
	if t.Root == None {
		return
	}
	out := New()
	var visit func(NodeID) NodeID
	visit = func(id NodeID) NodeID {
		n := t.nodes[id]
		if len(n.Children) == 0 {
			return out.Add(n.Label)
		}
		children := make([]NodeID, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, visit(c))
		}
		labels := strings.Split(n.Label, "_")
		node := out.Add(labels[len(labels)-1], children...)
		for i := len(labels) - 2; i >= 0; i-- {
			node = out.Add(labels[i], node)
		}
		return node
	}
	out.Root = visit(t.Root)
	*t = *out
}

// BinarizeRight rewrites every node with more than two children into a
// right-branching chain of intermediate nodes labeled "LABEL*".
func (t *Tree) BinarizeRight() {
	for _, id := range t.BottomUp() {
		children := slices.Clone(t.nodes[id].Children)
		if len(children) <= 2 {
			continue
		}
		virtual := t.nodes[id].Label + "*"
		prev := children[len(children)-1]
		for i := len(children) - 2; i >= 1; i-- {
			prev = t.Add(virtual, children[i], prev)
		}
		t.AppendChild(id, prev)
	}
}

// BinarizeLeft is the left-branching counterpart of BinarizeRight.
func (t *Tree) BinarizeLeft() {
	for _, id := range t.BottomUp() {
		children := slices.Clone(t.nodes[id].Children)
		if len(children) <= 2 {
			continue
		}
		virtual := t.nodes[id].Label + "*"
		prev := children[0]
		for i := 1; i < len(children)-1; i++ {
			prev = t.Add(virtual, prev, children[i])
		}
		t.InsertChild(id, 0, prev)
	}
}

// Unbinarize removes the intermediate "*" nodes introduced by binarization,
// splicing their children into the parent. The tree is rebuilt into a fresh
// arena.
func (t *Tree) Unbinarize() {
	if t.Root == None {
		return
	}
	out := New()
	var visit func(NodeID) []NodeID
	visit = func(id NodeID) []NodeID {
		n := t.nodes[id]
		if len(n.Children) == 0 {
			return []NodeID{out.Add(n.Label)}
		}
		var children []NodeID
		for _, c := range n.Children {
			children = append(children, visit(c)...)
		}
		if strings.HasSuffix(n.Label, "*") && id != t.Root {
			return children
		}
		return []NodeID{out.Add(n.Label, children...)}
	}
	out.Root = visit(t.Root)[0]
	*t = *out
}
