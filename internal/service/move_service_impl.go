package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/matlog/internal/db"
	"github.com/alexanderramin/matlog/internal/domain"
	"github.com/alexanderramin/matlog/internal/repository"
	"github.com/google/uuid"
)

type moveService struct {
	moves    repository.MoveRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewMoveService(moves repository.MoveRepo, uow db.UnitOfWork, observers ...UseCaseObserver) MoveService {
	return &moveService{
		moves:    moves,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *moveService) Create(ctx context.Context, in CreateMoveInput) (move *domain.Move, err error) {
	fields := map[string]any{"plan": in.PlanName}
	defer observe(ctx, s.observer, "create-move", fields, &err)()

	m, err := newMove(in)
	if err != nil {
		return nil, err
	}
	fields["move_id"] = m.ID

	if m.ParentID == nil {
		if err = s.moves.Create(ctx, m); err != nil {
			return nil, err
		}
		return m, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.moves.WithTx(tx)
		parent, err := repo.GetOwned(ctx, *m.ParentID, m.OwnerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("parent move %s: %w", *m.ParentID, domain.ErrNotFound)
			}
			return err
		}
		if parent.PlanName != m.PlanName {
			return &domain.ValidationError{Field: "parent_id", Reason: "belongs to a different plan"}
		}
		return repo.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// newMove validates in and builds the row to insert.
func newMove(in CreateMoveInput) (*domain.Move, error) {
	if err := requireOwner(in.OwnerID); err != nil {
		return nil, err
	}
	planName := strings.TrimSpace(in.PlanName)
	if err := domain.ValidatePlanName(planName); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := domain.ValidateMoveName(name); err != nil {
		return nil, err
	}
	desc := domain.OptionalNotes(in.Description)
	if err := domain.ValidateDescription(desc); err != nil {
		return nil, err
	}
	if err := domain.ValidateOrder(in.Order); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating move id: %w", err)
	}
	// A parent must already exist, so a new move can never close a cycle.
	parentID := domain.OptionalText(in.ParentID)

	now := time.Now().UTC()
	return &domain.Move{
		ID:          id.String(),
		OwnerID:     in.OwnerID,
		PlanName:    planName,
		Name:        name,
		Description: desc,
		ParentID:    parentID,
		OrderIndex:  domain.IntFromPtrWithDefault(0, in.Order),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *moveService) Update(ctx context.Context, id, ownerID string, patch MovePatch) (move *domain.Move, err error) {
	defer observe(ctx, s.observer, "update-move", map[string]any{"move_id": id}, &err)()

	if err = requireOwner(ownerID); err != nil {
		return nil, err
	}
	var name string
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if err = domain.ValidateMoveName(name); err != nil {
			return nil, err
		}
	}
	desc := domain.OptionalNotes(patch.Description)
	if err = domain.ValidateDescription(desc); err != nil {
		return nil, err
	}
	if err = domain.ValidateOrder(patch.Order); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return s.moves.GetOwned(ctx, id, ownerID)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.moves.WithTx(tx)
		m, err := repo.GetOwned(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			m.Name = name
		}
		if patch.Description != nil {
			m.Description = desc
		}
		if patch.Order != nil {
			m.OrderIndex = *patch.Order
		}
		m.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, m); err != nil {
			return err
		}
		move = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return move, nil
}

func (s *moveService) GetByID(ctx context.Context, id string) (*domain.Move, error) {
	return s.moves.GetByID(ctx, id)
}

func (s *moveService) GetOwned(ctx context.Context, id, ownerID string) (*domain.Move, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.moves.GetOwned(ctx, id, ownerID)
}

func (s *moveService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Move, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.moves.ListByOwner(ctx, ownerID)
}

func (s *moveService) DeleteSubtree(ctx context.Context, id, ownerID string) (deleted bool, err error) {
	fields := map[string]any{"move_id": id}
	defer observe(ctx, s.observer, "delete-subtree", fields, &err)()

	if err = requireOwner(ownerID); err != nil {
		return false, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.moves.WithTx(tx)
		if _, err := repo.GetOwned(ctx, id, ownerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}

		ids, err := collectSubtree(ctx, repo, ownerID, id)
		if err != nil {
			return err
		}
		n, err := repo.DeleteIDs(ctx, ownerID, ids)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return &domain.StorageError{
				Op:       "deleting subtree",
				Err:      fmt.Errorf("collected %d moves, removed %d", len(ids), n),
				Conflict: true,
			}
		}
		fields["deleted_count"] = n
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// collectSubtree returns rootID followed by every owned descendant, one query
// per tree level. Ids already seen are skipped so corrupt cycles terminate.
func collectSubtree(ctx context.Context, repo repository.MoveRepo, ownerID, rootID string) ([]string, error) {
	ids := []string{rootID}
	seen := map[string]bool{rootID: true}
	frontier := []string{rootID}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		children, err := repo.ListChildIDs(ctx, ownerID, frontier)
		if err != nil {
			return nil, fmt.Errorf("collecting descendants: %w", err)
		}
		var next []string
		for _, child := range children {
			if seen[child] {
				continue
			}
			seen[child] = true
			ids = append(ids, child)
			next = append(next, child)
		}
		frontier = next
	}
	return ids, nil
}

func (s *moveService) ListPlanNames(ctx context.Context, ownerID string) ([]string, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.moves.ListPlanNames(ctx, ownerID)
}

func (s *moveService) ListPlans(ctx context.Context, ownerID string) ([]domain.PlanSummary, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.moves.ListPlanSummaries(ctx, ownerID)
}

func (s *moveService) ListByPlan(ctx context.Context, ownerID, planName string) ([]*domain.Move, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.moves.ListByPlan(ctx, ownerID, planName)
}

func (s *moveService) PlanTree(ctx context.Context, ownerID, planName string) ([]*domain.MoveNode, error) {
	moves, err := s.ListByPlan(ctx, ownerID, planName)
	if err != nil {
		return nil, err
	}
	return domain.BuildMoveTree(moves), nil
}

func (s *moveService) DeletePlan(ctx context.Context, ownerID, planName string) (deleted int64, err error) {
	fields := map[string]any{"plan": planName}
	defer observe(ctx, s.observer, "delete-plan", fields, &err)()

	if err = requireOwner(ownerID); err != nil {
		return 0, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := s.moves.WithTx(tx).DeleteByPlan(ctx, ownerID, planName)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["deleted_count"] = deleted
	return deleted, nil
}
