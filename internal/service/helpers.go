package service

import (
	"context"
	"time"

	"github.com/alexanderramin/matlog/internal/domain"
)

// observe reports one use case to the observer when the returned func runs.
// Callers defer it with a pointer to their named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any, errp *error) func() {
	startedAt := time.Now()
	return func() {
		var err error
		if errp != nil {
			err = *errp
		}
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return &domain.ValidationError{Field: "owner", Reason: "is required"}
	}
	return nil
}
