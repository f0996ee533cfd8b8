package favorite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estately/service-listing-go/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := testutil.AcquireDB(t)
	svc := NewService(db, nil)
	require.NoError(t, svc.repo.EnsureSchema(context.Background()))
	return svc
}

func TestAddDuplicateRejectedByStore(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, "user-1", "prop-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", first.UserID)

	// the compound unique index, not application code, rejects this
	_, err = svc.Add(ctx, "user-1", "prop-1")
	assert.ErrorIs(t, err, ErrDuplicate)

	// other pairs are unaffected
	_, err = svc.Add(ctx, "user-1", "prop-2")
	assert.NoError(t, err)
	_, err = svc.Add(ctx, "user-2", "prop-1")
	assert.NoError(t, err)
}

func TestRemove(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	err := svc.Remove(ctx, "user-1", "prop-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Add(ctx, "user-1", "prop-1")
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, "user-1", "prop-1"))

	rows, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListOnlyOwnRows(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "user-1", "prop-1")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "user-1", "prop-2")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "user-2", "prop-1")
	require.NoError(t, err)

	rows, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, f := range rows {
		assert.Equal(t, "user-1", f.UserID)
	}
}
