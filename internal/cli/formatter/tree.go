package formatter

import (
	"strings"

	"github.com/alexanderramin/matlog/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	// Open[i] reports whether the ancestor at level i+1 has siblings below
	// it, in which case a vertical guide is drawn in that column.
	Open   []bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// MoveTreeItems flattens a move forest into display order.
func MoveTreeItems(forest []*domain.MoveNode) []TreeItem {
	var items []TreeItem
	var visit func(nodes []*domain.MoveNode, level int, open []bool)
	visit = func(nodes []*domain.MoveNode, level int, open []bool) {
		for i, n := range nodes {
			last := i == len(nodes)-1
			items = append(items, TreeItem{
				Title:  n.Move.Name,
				Level:  level,
				IsLast: last,
				Open:   open,
				Detail: shortID(n.Move.ID),
			})
			if len(n.Children) == 0 {
				continue
			}
			childOpen := open
			if level > 0 {
				childOpen = append(append([]bool(nil), open...), !last)
			}
			visit(n.Children, level+1, childOpen)
		}
	}
	visit(forest, 0, nil)
	return items
}

// RenderMoveTree renders a plan's move forest with box-drawing connectors
// and each move's short id right-aligned.
func RenderMoveTree(forest []*domain.MoveNode) string {
	return RenderTree(MoveTreeItems(forest))
}

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				if i-1 < len(item.Open) && item.Open[i-1] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		if item.Level == 0 {
			title = Bold(title)
		}
		content := StyleDim.Render(prefix.String()) + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Detail + " ]")
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
