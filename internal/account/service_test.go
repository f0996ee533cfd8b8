package account

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

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, created.Salt, 36)
	assert.GreaterOrEqual(t, created.SaltSplit, 0)
	assert.LessOrEqual(t, created.SaltSplit, len(created.Salt))
	assert.Len(t, created.PasswordHash, 64)

	logged, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, logged.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob", "other")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "carol", "right")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	// the stored record is untouched by the failed attempt
	after, err := svc.FindByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, created.PasswordHash, after.PasswordHash)
	assert.Equal(t, created.Salt, after.Salt)
	assert.Equal(t, created.SaltSplit, after.SaltSplit)
}

func TestLoginUnknownUsernameProvisions(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Login(ctx, "newcomer", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "newcomer", a.Username)
	assert.Empty(t, a.PasswordHash)
	assert.Empty(t, a.Salt)

	// the provisioned account is persisted and logs in again
	again, err := svc.Login(ctx, "newcomer", "something-else")
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, "dave", "pw")
	require.NoError(t, err)

	ident, err := svc.Resolve(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "dave", ident.Username)

	_, err = svc.Resolve(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfileRotatesSalt(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, "erin", "old-pw")
	require.NoError(t, err)

	pw := "new-pw"
	updated, err := svc.UpdateProfile(ctx, a.ID, nil, &pw)
	require.NoError(t, err)
	assert.NotEqual(t, a.Salt, updated.Salt)

	_, err = svc.Login(ctx, "erin", "old-pw")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Login(ctx, "erin", "new-pw")
	assert.NoError(t, err)
}
