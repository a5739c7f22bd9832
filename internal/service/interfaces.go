package service

import (
	"context"

	"github.com/alexanderramin/matlog/internal/domain"
)

// CreateMoveInput carries the caller-supplied fields of a new move. OwnerID
// comes from the authenticated caller, never from a client payload.
type CreateMoveInput struct {
	OwnerID     string
	PlanName    string
	Name        string
	Description *string
	ParentID    *string
	Order       *int
}

// MovePatch lists the mutable fields of a move; nil leaves a field unchanged.
// An empty Description clears it.
type MovePatch struct {
	Name        *string
	Description *string
	Order       *int
}

func (p MovePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Order == nil
}

type MoveService interface {
	Create(ctx context.Context, in CreateMoveInput) (*domain.Move, error)
	Update(ctx context.Context, id, ownerID string, patch MovePatch) (*domain.Move, error)
	GetByID(ctx context.Context, id string) (*domain.Move, error)
	GetOwned(ctx context.Context, id, ownerID string) (*domain.Move, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Move, error)

	// DeleteSubtree removes a move and all of its descendants atomically. It
	// reports false, with no error, when the move does not exist or belongs to
	// someone else.
	DeleteSubtree(ctx context.Context, id, ownerID string) (bool, error)

	PlanIndex
}

// PlanIndex is the read side used for navigation, plus whole-plan removal.
type PlanIndex interface {
	ListPlanNames(ctx context.Context, ownerID string) ([]string, error)
	ListPlans(ctx context.Context, ownerID string) ([]domain.PlanSummary, error)
	ListByPlan(ctx context.Context, ownerID, planName string) ([]*domain.Move, error)
	PlanTree(ctx context.Context, ownerID, planName string) ([]*domain.MoveNode, error)
	DeletePlan(ctx context.Context, ownerID, planName string) (int64, error)
}
