package mutate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"auralis-cli/internal/model"
	"auralis-cli/internal/store"
)

const testDefaultArea = "area_admin_life"

func strPtr(s string) *string { return &s }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Update(context.Background(), func(tx *store.Tx) error {
		_, err := tx.EnsureArea(context.Background(), &model.Area{ID: testDefaultArea, Name: "Admin/Life", Active: true})
		return err
	}))
	return s
}

// inTx runs fn in a write transaction and fails the test on error.
func inTx(t *testing.T, s *store.Store, fn func(ctx context.Context, tx *store.Tx) error) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Update(ctx, func(tx *store.Tx) error { return fn(ctx, tx) }))
}

// txErr runs fn in a write transaction and returns its error.
func txErr(s *store.Store, fn func(ctx context.Context, tx *store.Tx) error) error {
	ctx := context.Background()
	return s.Update(ctx, func(tx *store.Tx) error { return fn(ctx, tx) })
}
