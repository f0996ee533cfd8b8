package message

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messagerepo "github.com/estately/service-listing-go/internal/message/repo"
	"github.com/estately/service-listing-go/internal/testutil"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db := testutil.AcquireDB(t)
	r := messagerepo.NewMessageRepo(db)
	require.NoError(t, r.EnsureSchema(context.Background()))
	return NewService(db, r)
}

func TestSendRapidFire(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	// ids are the primary key; back-to-back sends land in the same
	// millisecond and must all insert cleanly
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		m, err := svc.Send(ctx, "office-1", "prop-1", "u1", fmt.Sprintf("msg %d", i))
		require.NoError(t, err, "send %d", i)
		_, dup := seen[m.ID]
		require.False(t, dup, "id %q repeated at send %d", m.ID, i)
		seen[m.ID] = struct{}{}
	}
}

func TestListThreadOrder(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	bodies := []string{"first", "second", "third"}
	for _, b := range bodies {
		_, err := svc.Send(ctx, "office-1", "prop-1", "u1", b)
		require.NoError(t, err)
	}
	// a message in another thread must not leak in
	_, err := svc.Send(ctx, "office-2", "prop-1", "u1", "elsewhere")
	require.NoError(t, err)

	msgs, err := svc.ListThread(ctx, "office-1", "prop-1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for i, m := range msgs {
		assert.Equal(t, bodies[i], m.Body)
	}
}

func TestMarkRead(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	m, err := svc.Send(ctx, "office-1", "prop-1", "u1", "hello")
	require.NoError(t, err)
	assert.False(t, m.Read)

	require.NoError(t, svc.MarkRead(ctx, m.ID))

	msgs, err := svc.ListThread(ctx, "office-1", "prop-1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Read)

	assert.ErrorIs(t, svc.MarkRead(ctx, "no-such-id"), ErrNotFound)
}
