package httpapi

import (
	"time"

	"github.com/alexanderramin/matlog/internal/domain"
)

// moveJSON is the wire form of a move. The owner id is never echoed.
type moveJSON struct {
	ID          string    `json:"id"`
	PlanName    string    `json:"planName"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ParentID    *string   `json:"parentId"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type moveNodeJSON struct {
	moveJSON
	Children []moveNodeJSON `json:"children"`
}

type planSummaryJSON struct {
	Name      string `json:"name"`
	MoveCount int    `json:"moveCount"`
	RootCount int    `json:"rootCount"`
}

type createMoveRequest struct {
	PlanName    string  `json:"planName"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
	Order       *int    `json:"order"`
}

type patchMoveRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

type deletedJSON struct {
	Deleted int64 `json:"deleted"`
}

func toMoveJSON(m *domain.Move) moveJSON {
	return moveJSON{
		ID:          m.ID,
		PlanName:    m.PlanName,
		Name:        m.Name,
		Description: m.Description,
		ParentID:    m.ParentID,
		Order:       m.OrderIndex,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func toMovesJSON(moves []*domain.Move) []moveJSON {
	out := make([]moveJSON, 0, len(moves))
	for _, m := range moves {
		out = append(out, toMoveJSON(m))
	}
	return out
}

func toForestJSON(nodes []*domain.MoveNode) []moveNodeJSON {
	out := make([]moveNodeJSON, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, moveNodeJSON{
			moveJSON: toMoveJSON(n.Move),
			Children: toForestJSON(n.Children),
		})
	}
	return out
}

func toPlansJSON(plans []domain.PlanSummary) []planSummaryJSON {
	out := make([]planSummaryJSON, 0, len(plans))
	for _, p := range plans {
		out = append(out, planSummaryJSON{Name: p.Name, MoveCount: p.MoveCount, RootCount: p.RootCount})
	}
	return out
}
