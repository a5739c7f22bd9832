package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/matlog/internal/domain"
)

// FormatPlanList renders the plan index as a table.
func FormatPlanList(plans []domain.PlanSummary) string {
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			PlanBadge(p.Name),
			strconv.Itoa(p.MoveCount),
			strconv.Itoa(p.RootCount),
		})
	}
	return RenderTable([]Column{{Title: "PLAN"}, {Title: "MOVES", Right: true}, {Title: "ROOTS", Right: true}}, rows)
}

// FormatPlanMoves renders a plan's moves in display order.
func FormatPlanMoves(planName string, moves []*domain.Move) string {
	names := make(map[string]string, len(moves))
	for _, m := range moves {
		names[m.ID] = m.Name
	}

	rows := make([][]string, 0, len(moves))
	for _, m := range moves {
		parent := Dim("--")
		if m.ParentID != nil {
			if name, ok := names[*m.ParentID]; ok {
				parent = name
			} else {
				parent = TruncID(*m.ParentID)
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(m.OrderIndex),
			m.Name,
			TruncID(m.ID),
			parent,
		})
	}

	var b strings.Builder
	b.WriteString(Header(planName) + "\n")
	b.WriteString(RenderTable([]Column{{Title: "ORDER", Right: true}, {Title: "MOVE"}, {Title: "ID"}, {Title: "PARENT"}}, rows))
	b.WriteString(Dim(fmt.Sprintf("%d moves", len(moves))) + "\n")
	return b.String()
}

// FormatPlanTree renders a plan's forest under a header.
func FormatPlanTree(planName string, forest []*domain.MoveNode) string {
	return Header(planName) + "\n" + RenderMoveTree(forest)
}
