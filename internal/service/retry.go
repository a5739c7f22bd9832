package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/matlog/internal/domain"
)

// RetryOnConflict runs fn and, while it fails with domain.ErrConflict, runs it
// again up to retries more times. Other errors and context cancellation end
// the loop immediately.
func RetryOnConflict(ctx context.Context, retries int, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	for i := 0; i < retries && errors.Is(err, domain.ErrConflict); i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return err
		}
		err = fn(ctx)
	}
	return err
}
