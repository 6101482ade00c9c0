package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	run := &Run{
		ID:           "run-1",
		ProcessInput: "0 5 2\n0 2 3",
		ProcessCount: 2,
		Quantum:      2,
		Aging:        1,
		Results:      json.RawMessage(`{"FCFS":{"context_switches":1}}`),
		CreatedAt:    created,
	}
	require.NoError(t, st.SaveRun(ctx, run))

	got, err := st.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.ProcessInput, got.ProcessInput)
	assert.Equal(t, 2, got.ProcessCount)
	assert.JSONEq(t, string(run.Results), string(got.Results))
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	st := newTestStore(t)
	_, err := st.GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_SaveDuplicate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	run := &Run{ID: "dup", ProcessInput: "0 1 1", ProcessCount: 1, Quantum: 2, Aging: 1, Results: json.RawMessage(`{}`)}
	require.NoError(t, st.SaveRun(ctx, run))
	assert.Error(t, st.SaveRun(ctx, run))
}

func TestSQLiteStore_ListNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, st.SaveRun(ctx, &Run{
			ID:           fmt.Sprintf("run-%d", i),
			ProcessInput: "0 1 1",
			ProcessCount: 1,
			Quantum:      2,
			Aging:        1,
			Results:      json.RawMessage(`{}`),
			// sub-second offsets must still order correctly
			CreatedAt: base.Add(time.Duration(i) * 100 * time.Millisecond),
		}))
	}

	runs, err := st.ListRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)
	assert.Equal(t, "run-2", runs[2].ID)

	all, err := st.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestSQLiteStore_SaveSetsCreatedAt(t *testing.T) {
	st := newTestStore(t)
	run := &Run{ID: "now", ProcessInput: "0 1 1", ProcessCount: 1, Quantum: 2, Aging: 1, Results: json.RawMessage(`{}`)}
	require.NoError(t, st.SaveRun(context.Background(), run))
	assert.False(t, run.CreatedAt.IsZero())
}
