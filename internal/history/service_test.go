package history_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/apiarycd/release-manager/internal/history"
	"github.com/apiarycd/release-manager/internal/repository"
)

func newService(t *testing.T) *history.Service {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return history.NewService(history.NewRepository(db), zaptest.NewLogger(t))
}

func mustTarget(t *testing.T, ref string) repository.Target {
	t.Helper()

	target, err := repository.ParseGitHub(ref, "token")
	require.NoError(t, err)

	return target
}

func TestService_Record(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()
	target := mustTarget(t, "org/repo/sb-2.7.x")

	pushed, err := svc.Record(ctx, target, "update release", repository.Result{
		ChangeSet: repository.ChangeSet{"release.yml"},
		CommitID:  "abc123",
		RefSpec:   target.RefSpec(),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, history.OutcomePushed, pushed.Outcome)
	assert.Equal(t, []string{"release.yml"}, pushed.Files)
	assert.Equal(t, "github", pushed.Provider)
	assert.Equal(t, "sb-2.7.x", pushed.Branch)

	noop, err := svc.Record(ctx, target, "update release", repository.Result{NoOp: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, history.OutcomeNoOp, noop.Outcome)

	failed, err := svc.Record(ctx, target, "update release", repository.Result{}, errors.New("push rejected"))
	require.NoError(t, err)
	assert.Equal(t, history.OutcomeFailed, failed.Outcome)
	assert.Equal(t, "push rejected", failed.Error)

	entries, err := svc.List(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []uuid.UUID{failed.ID, noop.ID, pushed.ID},
		[]uuid.UUID{entries[0].ID, entries[1].ID, entries[2].ID})
	assert.Equal(t, "abc123", entries[2].CommitID)
}

func TestService_List_by_target(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()
	primary := mustTarget(t, "org/repo/main")
	other := mustTarget(t, "org/repo/main-next")

	for range 3 {
		_, err := svc.Record(ctx, primary, "msg", repository.Result{NoOp: true}, nil)
		require.NoError(t, err)
	}
	_, err := svc.Record(ctx, other, "msg", repository.Result{NoOp: true}, nil)
	require.NoError(t, err)

	entries, err := svc.List(ctx, &primary, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, primary.String(), entry.Target)
	}

	limited, err := svc.List(ctx, &primary, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRepository_GetByID(t *testing.T) {
	t.Parallel()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := history.NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, history.EntryDraft{Target: "github:org/repo@main", Outcome: history.OutcomeNoOp})
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Target, found.Target)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Record(ctx, mustTarget(t, "org/repo/main"), "msg", repository.Result{NoOp: true}, nil)
	require.NoError(t, err)

	found, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, history.OutcomeNoOp, found.Outcome)

	_, err = svc.Get(ctx, "not-a-uuid")
	require.ErrorIs(t, err, history.ErrInvalidID)

	_, err = svc.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, history.ErrNotFound)
}
