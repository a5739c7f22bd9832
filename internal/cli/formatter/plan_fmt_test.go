package formatter

import (
	"testing"

	"github.com/alexanderramin/matlog/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatPlanList(t *testing.T) {
	out := stripANSI(FormatPlanList([]domain.PlanSummary{
		{Name: "Guard", MoveCount: 5, RootCount: 2},
		{Name: "Takedowns", MoveCount: 1, RootCount: 1},
	}))

	assert.Contains(t, out, "PLAN")
	assert.Contains(t, out, "MOVES")
	assert.Regexp(t, `Guard\s+5\s+2`, out)
	assert.Regexp(t, `Takedowns\s+1\s+1`, out)
}

func TestFormatPlanMoves_ShowsParentNames(t *testing.T) {
	moves := []*domain.Move{
		move("aaaaaaaa-1", "Guard Passing", "", 0),
		move("bbbbbbbb-2", "Knee Slice", "aaaaaaaa-1", 0),
		move("cccccccc-3", "Orphan", "zzzzzzzz-9", 2),
	}

	out := stripANSI(FormatPlanMoves("Guard", moves))

	assert.Contains(t, out, "GUARD")
	assert.Regexp(t, `0\s+Knee Slice\s+bbbbbbbb\s+Guard Passing`, out)
	assert.Regexp(t, `2\s+Orphan\s+cccccccc\s+zzzzzzzz`, out)
	assert.Contains(t, out, "3 moves")
}

func TestFormatPlanTree(t *testing.T) {
	out := stripANSI(FormatPlanTree("Guard", sampleForest()))
	assert.Contains(t, out, "GUARD\n─────\n")
	assert.Contains(t, out, "│  └─ Far-side Underhook")
}
