package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/matlog/internal/domain"
)

// resolveMoveID resolves a full move id or a unique prefix of one among the
// owner's moves.
func resolveMoveID(ctx context.Context, app *App, ownerID, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("move ID is required")
	}

	moves, err := app.Moves.ListByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, m := range moves {
		if m.ID == input {
			return m.ID, nil
		}
		if strings.HasPrefix(m.ID, strings.ToLower(input)) {
			matches = append(matches, m.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("move %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("move ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
