package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/matlog/internal/domain"
	"github.com/alexanderramin/matlog/internal/repository"
	"github.com/alexanderramin/matlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedChain(t *testing.T, repo *repository.SQLMoveRepo) (root, child, grandchild, sibling *domain.Move) {
	t.Helper()
	ctx := context.Background()
	root = testutil.NewTestMove(owner1, "Plan", "Root")
	require.NoError(t, repo.Create(ctx, root))
	child = testutil.NewTestMove(owner1, "Plan", "Child", testutil.WithParent(root.ID))
	require.NoError(t, repo.Create(ctx, child))
	grandchild = testutil.NewTestMove(owner1, "Plan", "Grandchild", testutil.WithParent(child.ID))
	require.NoError(t, repo.Create(ctx, grandchild))
	sibling = testutil.NewTestMove(owner1, "Plan", "Sibling")
	require.NoError(t, repo.Create(ctx, sibling))
	return root, child, grandchild, sibling
}

// TestDeleteIDs_ParentWithoutChildrenIsConflict verifies the parent_id
// foreign key refuses to leave orphans behind.
func TestDeleteIDs_ParentWithoutChildrenIsConflict(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := testutil.NewTestMoveRepo(database)
	root, _, _, _ := seedChain(t, repo)

	_, err := repo.DeleteIDs(context.Background(), owner1, []string{root.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 4, testutil.CountMoves(t, database), "nothing is removed")
}

// TestDeleteIDs_WholeSubtreeInOneStatement verifies the foreign key is
// checked at the end of the statement, so a complete subtree goes at once in
// any id order.
func TestDeleteIDs_WholeSubtreeInOneStatement(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := testutil.NewTestMoveRepo(database)
	root, child, grandchild, sibling := seedChain(t, repo)

	n, err := repo.DeleteIDs(context.Background(), owner1, []string{root.ID, child.ID, grandchild.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []string{sibling.ID}, testutil.MoveIDs(t, database))
}
