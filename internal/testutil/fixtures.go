package testutil

import (
	"time"

	"github.com/alexanderramin/matlog/internal/domain"
	"github.com/google/uuid"
)

// Move options
type MoveOption func(*domain.Move)

func WithParent(id string) MoveOption {
	return func(m *domain.Move) {
		m.ParentID = &id
	}
}

func WithOrder(i int) MoveOption {
	return func(m *domain.Move) {
		m.OrderIndex = i
	}
}

func WithDescription(d string) MoveOption {
	return func(m *domain.Move) {
		m.Description = &d
	}
}

func WithMoveID(id string) MoveOption {
	return func(m *domain.Move) {
		m.ID = id
	}
}

// NewTestMove builds a move ready for repo.Create.
func NewTestMove(ownerID, planName, name string, opts ...MoveOption) *domain.Move {
	now := time.Now().UTC()
	m := &domain.Move{
		ID:        uuid.Must(uuid.NewV7()).String(),
		OwnerID:   ownerID,
		PlanName:  planName,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
