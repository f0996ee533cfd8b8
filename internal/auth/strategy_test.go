package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticResolver struct {
	known map[string]*Identity
}

func (r *staticResolver) Resolve(_ context.Context, id string) (*Identity, error) {
	if ident, ok := r.known[id]; ok {
		return ident, nil
	}
	return nil, errors.New("account not found")
}

func newResolver(ids ...string) *staticResolver {
	r := &staticResolver{known: map[string]*Identity{}}
	for _, id := range ids {
		r.known[id] = &Identity{ID: id, Username: "user-" + id}
	}
	return r
}

func TestBearerStrategy(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("secret"), time.Hour)
	strategy := NewBearerStrategy(issuer, newResolver("u1"))

	tok, err := issuer.Issue("u1")
	require.NoError(t, err)

	// the scheme is accepted in any casing
	for _, scheme := range []string{"Bearer", "bearer", "BEARER"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", scheme+" "+tok)
		ident, err := strategy.Authenticate(r)
		require.NoError(t, err, scheme)
		assert.Equal(t, "u1", ident.ID)
	}
}

func TestBearerStrategyRejections(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("secret"), time.Hour)
	strategy := NewBearerStrategy(issuer, newResolver("u1"))

	// token for a user that no longer exists
	tok, err := issuer.Issue("gone")
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":   "",
		"not bearer form":  "u1",
		"tampered token":   "Bearer abc.def.ghi",
		"unresolvable sub": "Bearer " + tok,
	}
	for name, header := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		_, err := strategy.Authenticate(r)
		assert.ErrorIs(t, err, ErrUnauthorized, name)
	}
}

func TestDirectIDStrategy(t *testing.T) {
	t.Parallel()

	strategy := NewDirectIDStrategy(newResolver("u7"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "u7")
	ident, err := strategy.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, "u7", ident.ID)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "unknown")
	_, err = strategy.Authenticate(r)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	strategy := NewDirectIDStrategy(newResolver("u9"))
	protected := Middleware(strategy, zap.NewNop().Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := IdentityFrom(r.Context())
		require.NotNil(t, ident)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(ident.ID))
	}))

	apitest.New().
		Handler(protected).
		Get("/").
		Header("Authorization", "u9").
		Expect(t).
		Body(`u9`).
		Status(http.StatusOK).
		End()

	apitest.New().
		Handler(protected).
		Get("/").
		Expect(t).
		Body(`{"error":"Unauthorized"}`).
		Status(http.StatusUnauthorized).
		End()
}
