package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mv(id string, parent string, order int) *Move {
	m := &Move{ID: id, OwnerID: "u1", PlanName: "Guard Passing", Name: id, OrderIndex: order}
	if parent != "" {
		m.ParentID = &parent
	}
	return m
}

func names(nodes []*MoveNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Move.Name)
	}
	return out
}

func TestBuildMoveTree_Empty(t *testing.T) {
	assert.Empty(t, BuildMoveTree(nil))
}

func TestBuildMoveTree_NestsChildrenInInputOrder(t *testing.T) {
	moves := []*Move{
		mv("knee-cut", "", 0),
		mv("leg-drag", "", 1),
		mv("crossface", "knee-cut", 0),
		mv("underhook", "knee-cut", 1),
		mv("backstep", "leg-drag", 0),
		mv("far-hip", "crossface", 0),
	}

	roots := BuildMoveTree(moves)
	require.Len(t, roots, 2)
	assert.Equal(t, []string{"knee-cut", "leg-drag"}, names(roots))
	assert.Equal(t, []string{"crossface", "underhook"}, names(roots[0].Children))
	assert.Equal(t, []string{"far-hip"}, names(roots[0].Children[0].Children))
	assert.Equal(t, []string{"backstep"}, names(roots[1].Children))
	assert.Equal(t, 6, CountNodes(roots))
}

func TestBuildMoveTree_ChildBeforeParentInInput(t *testing.T) {
	moves := []*Move{
		mv("child", "root", 0),
		mv("root", "", 5),
	}

	roots := BuildMoveTree(moves)
	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].Move.Name)
	assert.Equal(t, []string{"child"}, names(roots[0].Children))
}

func TestBuildMoveTree_MissingParentPromotedToRoot(t *testing.T) {
	moves := []*Move{
		mv("root", "", 0),
		mv("orphan", "deleted-elsewhere", 1),
	}

	roots := BuildMoveTree(moves)
	assert.Equal(t, []string{"root", "orphan"}, names(roots))
}

func TestBuildMoveTree_CycleIsBrokenAtFirstMember(t *testing.T) {
	moves := []*Move{
		mv("a", "c", 0),
		mv("b", "a", 1),
		mv("c", "b", 2),
		mv("self", "self", 3),
	}

	roots := BuildMoveTree(moves)
	assert.Equal(t, []string{"a", "self"}, names(roots))
	assert.Equal(t, []string{"b"}, names(roots[0].Children))
	assert.Equal(t, []string{"c"}, names(roots[0].Children[0].Children))
	assert.Empty(t, roots[0].Children[0].Children[0].Children)
	assert.Empty(t, roots[1].Children)
	assert.Equal(t, 4, CountNodes(roots))
}

func TestBuildMoveTree_DuplicateIDsKeptOnce(t *testing.T) {
	moves := []*Move{mv("a", "", 0), mv("a", "", 1)}
	roots := BuildMoveTree(moves)
	require.Len(t, roots, 1)
	assert.Equal(t, 0, roots[0].Move.OrderIndex)
}

func TestWalk_DepthFirstWithDepth(t *testing.T) {
	roots := BuildMoveTree([]*Move{
		mv("knee-cut", "", 0),
		mv("toreando-counter", "knee-cut", 0),
		mv("berimbolo-recovery", "toreando-counter", 0),
		mv("smash", "", 1),
	})

	var visited []string
	var depths []int
	Walk(roots, func(n *MoveNode, depth int) {
		visited = append(visited, n.Move.Name)
		depths = append(depths, depth)
	})
	assert.Equal(t, []string{"knee-cut", "toreando-counter", "berimbolo-recovery", "smash"}, visited)
	assert.Equal(t, []int{0, 1, 2, 0}, depths)
}
