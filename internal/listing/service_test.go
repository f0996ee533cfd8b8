package listing

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

func TestCreateAppliesDefaultImage(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Title: "Lakeside cabin", Price: 250000})
	require.NoError(t, err)
	assert.Equal(t, defaultImage, p.Image)

	p2, err := svc.Create(ctx, CreateInput{Title: "Loft", Image: "https://example.com/loft.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/loft.jpg", p2.Image)
}

func TestPatchMergesFields(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Title: "Old title", Address: "1 Main St", Price: 100})
	require.NoError(t, err)

	title := "New title"
	updated, err := svc.Patch(ctx, p.ID, PatchInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "1 Main St", updated.Address)
	assert.Equal(t, int64(100), updated.Price)

	_, err = svc.Patch(ctx, "missing", PatchInput{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Title: "Seaside villa", Address: "Shore Rd"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Title: "City flat", Address: "High St"})
	require.NoError(t, err)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hits, err := svc.Search(ctx, "villa")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Seaside villa", hits[0].Title)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Title: "To remove"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), ErrNotFound)
}
