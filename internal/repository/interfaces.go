package repository

import (
	"context"

	"github.com/alexanderramin/matlog/internal/db"
	"github.com/alexanderramin/matlog/internal/domain"
)

// MoveRepo persists moves. Every method except GetByID filters on ownerID.
type MoveRepo interface {
	// WithTx returns a repo bound to tx, for use inside a UnitOfWork.
	WithTx(tx db.DBTX) MoveRepo

	Create(ctx context.Context, m *domain.Move) error
	GetByID(ctx context.Context, id string) (*domain.Move, error)
	GetOwned(ctx context.Context, id, ownerID string) (*domain.Move, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Move, error)
	ListByPlan(ctx context.Context, ownerID, planName string) ([]*domain.Move, error)
	ListPlanNames(ctx context.Context, ownerID string) ([]string, error)
	ListPlanSummaries(ctx context.Context, ownerID string) ([]domain.PlanSummary, error)
	ListChildIDs(ctx context.Context, ownerID string, parentIDs []string) ([]string, error)
	Update(ctx context.Context, m *domain.Move) error
	DeleteIDs(ctx context.Context, ownerID string, ids []string) (int64, error)
	DeleteByPlan(ctx context.Context, ownerID, planName string) (int64, error)
}
