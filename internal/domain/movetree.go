package domain

import "slices"

// MoveNode is a move with its ordered children, as assembled for display.
type MoveNode struct {
	Move     *Move
	Children []*MoveNode
}

// BuildMoveTree assembles a forest from a flat list of moves belonging to one
// plan. Input order is preserved among siblings, so callers pass moves already
// sorted by OrderIndex. A move whose parent is missing from the input is
// promoted to a root, and so is the first move (in input order) of any parent
// cycle, so the result is always a finite forest.
func BuildMoveTree(moves []*Move) []*MoveNode {
	nodes := make(map[string]*MoveNode, len(moves))
	ordered := make([]*MoveNode, 0, len(moves))
	for _, m := range moves {
		if m == nil {
			continue
		}
		if _, dup := nodes[m.ID]; dup {
			continue
		}
		n := &MoveNode{Move: m}
		nodes[m.ID] = n
		ordered = append(ordered, n)
	}

	var roots []*MoveNode
	for _, n := range ordered {
		if n.Move.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := nodes[*n.Move.ParentID]
		if !ok {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	reached := make(map[*MoveNode]bool, len(ordered))
	for _, r := range roots {
		markReached(r, reached)
	}
	if len(reached) == len(ordered) {
		return roots
	}

	// Whatever is left hangs off a parent cycle.
	for _, n := range ordered {
		if reached[n] {
			continue
		}
		parent := nodes[*n.Move.ParentID]
		parent.Children = slices.DeleteFunc(parent.Children, func(c *MoveNode) bool { return c == n })
		roots = append(roots, n)
		markReached(n, reached)
	}
	return roots
}

func markReached(n *MoveNode, reached map[*MoveNode]bool) {
	if reached[n] {
		return
	}
	reached[n] = true
	for _, c := range n.Children {
		markReached(c, reached)
	}
}

// Walk visits every node depth-first in display order. Roots have depth 0.
func Walk(nodes []*MoveNode, fn func(n *MoveNode, depth int)) {
	for _, n := range nodes {
		walk(n, 0, fn)
	}
}

func walk(n *MoveNode, depth int, fn func(n *MoveNode, depth int)) {
	fn(n, depth)
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// CountNodes returns the number of nodes in the forest.
func CountNodes(nodes []*MoveNode) int {
	count := 0
	Walk(nodes, func(*MoveNode, int) { count++ })
	return count
}
