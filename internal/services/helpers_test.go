package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/recipebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/recipebook-backend/internal/domain/recipes"
	"github.com/yungbote/recipebook-backend/internal/platform/apierr"
	"github.com/yungbote/recipebook-backend/internal/platform/dbctx"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) add(format string, args ...any) {
	n.mu.Lock()
	n.events = append(n.events, fmt.Sprintf(format, args...))
	n.mu.Unlock()
}

func (n *recordingNotifier) RecipeCreated(_ context.Context, r *types.Recipe) {
	n.add("recipe.created:%d", r.ID)
}
func (n *recordingNotifier) RecipeUpdated(_ context.Context, r *types.Recipe) {
	n.add("recipe.updated:%d", r.ID)
}
func (n *recordingNotifier) RecipeDeleted(_ context.Context, id uint) { n.add("recipe.deleted:%d", id) }
func (n *recordingNotifier) PantryCreated(_ context.Context, item *types.PantryItem) {
	n.add("pantry.created:%d", item.ID)
}
func (n *recordingNotifier) PantryUpdated(_ context.Context, item *types.PantryItem) {
	n.add("pantry.updated:%d", item.ID)
}
func (n *recordingNotifier) PantryDeleted(_ context.Context, id uint) { n.add("pantry.deleted:%d", id) }

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func txContext(t *testing.T) dbctx.Context {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	return dbctx.Context{Ctx: context.Background(), Tx: tx}
}

func requireAPIError(t *testing.T, err error, status int, code string) *apierr.Error {
	t.Helper()
	require.Error(t, err)
	ae, ok := apierr.As(err)
	require.True(t, ok, "expected *apierr.Error, got %T: %v", err, err)
	require.Equal(t, status, ae.Status)
	require.Equal(t, code, ae.Code)
	return ae
}

func ptrInt(v int) *int { return &v }
