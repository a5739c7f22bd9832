package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/matlog/internal/domain"
)

// MoveDetailOptions controls how a move's description is rendered.
type MoveDetailOptions struct {
	MarkdownStyle string
	Width         int
}

// FormatMoveDetail renders one move in a box, its description as markdown.
func FormatMoveDetail(m *domain.Move, opts MoveDetailOptions) string {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-8s", label)), value)
	}

	field("Plan", PlanBadge(m.PlanName))
	field("ID", m.ID)
	if m.ParentID != nil {
		field("Parent", *m.ParentID)
	} else {
		field("Parent", Dim("root"))
	}
	field("Order", fmt.Sprintf("%d", m.OrderIndex))
	field("Created", HumanTimestamp(m.CreatedAt))
	field("Updated", HumanTimestamp(m.UpdatedAt))

	if m.Description != nil {
		b.WriteString("\n")
		b.WriteString(RenderMarkdown(*m.Description, opts.MarkdownStyle, opts.Width))
	}

	return RenderBox(m.Name, strings.TrimRight(b.String(), "\n"))
}
