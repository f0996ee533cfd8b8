package router

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	accountrepo "github.com/estately/service-listing-go/internal/account/repo"
	"github.com/estately/service-listing-go/internal/auth"
	categoryrepo "github.com/estately/service-listing-go/internal/category/repo"
	favoriterepo "github.com/estately/service-listing-go/internal/favorite/repo"
	listingrepo "github.com/estately/service-listing-go/internal/listing/repo"
	messagerepo "github.com/estately/service-listing-go/internal/message/repo"
	officerepo "github.com/estately/service-listing-go/internal/office/repo"
	"github.com/estately/service-listing-go/internal/testutil"
)

type testServer struct {
	handler http.Handler
	issuer  *auth.TokenIssuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.AcquireDB(t)
	ctx := context.Background()
	for _, ensure := range []func(context.Context) error{
		accountrepo.NewAccountRepo(db).EnsureSchema,
		listingrepo.NewPropertyRepo(db).EnsureSchema,
		categoryrepo.NewCategoryRepo(db).EnsureSchema,
		officerepo.NewOfficeRepo(db).EnsureSchema,
		messagerepo.NewMessageRepo(db).EnsureSchema,
		favoriterepo.NewFavoriteRepo(db).EnsureSchema,
	} {
		require.NoError(t, ensure(ctx))
	}
	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	return &testServer{
		handler: RegisterRoutes(zap.NewNop().Sugar(), db, issuer),
		issuer:  issuer,
	}
}

type authResponse struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Username string `json:"username"`
}

// register drives the real endpoint and returns the issued token and id.
func (ts *testServer) register(t *testing.T, username, password string) authResponse {
	t.Helper()
	result := apitest.New().
		Handler(ts.handler).
		Post("/register").
		JSON(map[string]string{"username": username, "password": password}).
		Expect(t).
		Status(http.StatusOK).
		End()
	var out authResponse
	require.NoError(t, json.NewDecoder(result.Response.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	require.NotEmpty(t, out.ID)
	return out
}

func TestRegisterResponseOmitsSecrets(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	apitest.New().
		Handler(ts.handler).
		Post("/register").
		JSON(map[string]string{"username": "alice", "password": "s3cret"}).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$.token")).
		Assert(jsonpath.Equal("$.username", "alice")).
		Assert(jsonpath.NotPresent("$.password")).
		Assert(jsonpath.NotPresent("$.passwordHash")).
		Assert(jsonpath.NotPresent("$.salt")).
		Assert(jsonpath.NotPresent("$.saltSplit")).
		End()
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ts.register(t, "bob", "pw")

	apitest.New().
		Handler(ts.handler).
		Post("/register").
		JSON(map[string]string{"username": "bob", "password": "pw"}).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.error", "username already exists")).
		End()
}

func TestLoginFlows(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ts.register(t, "carol", "right-pw")

	// correct password
	apitest.New().
		Handler(ts.handler).
		Post("/login").
		JSON(map[string]string{"username": "carol", "password": "right-pw"}).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$.token")).
		Assert(jsonpath.NotPresent("$.salt")).
		End()

	// wrong password
	apitest.New().
		Handler(ts.handler).
		Post("/login").
		JSON(map[string]string{"username": "carol", "password": "wrong-pw"}).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	// never-seen username is provisioned and succeeds
	apitest.New().
		Handler(ts.handler).
		Post("/login").
		JSON(map[string]string{"username": "newcomer", "password": "anything"}).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$.token")).
		Assert(jsonpath.Equal("$.username", "newcomer")).
		End()
}

func TestManagementGroupRequiresBearer(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	// absent, malformed and unverifiable headers all produce 401, never 500
	for _, header := range []string{"", "not-a-token", "Bearer garbage", "Bearer abc.def.ghi"} {
		req := apitest.New().Handler(ts.handler).Get("/properties/some-id")
		if header != "" {
			req.Header("Authorization", header)
		}
		req.Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Equal("$.error", "Unauthorized")).
			End()
	}
}

func TestLegacyGroupDirectIdentifier(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	creds := ts.register(t, "dave", "pw")

	// raw account id in the Authorization header
	apitest.New().
		Handler(ts.handler).
		Get("/search").
		Header("Authorization", creds.ID).
		Expect(t).
		Status(http.StatusOK).
		End()

	// a signed token is not a valid direct identifier
	apitest.New().
		Handler(ts.handler).
		Get("/search").
		Header("Authorization", "Bearer "+creds.Token).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestFavoritesLifecycle(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	creds := ts.register(t, "erin", "pw")
	bearer := "Bearer " + creds.Token

	// first add succeeds
	apitest.New().
		Handler(ts.handler).
		Post("/favorites/prop-1").
		Header("Authorization", bearer).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.userId", creds.ID)).
		Assert(jsonpath.Equal("$.propertyId", "prop-1")).
		End()

	// second identical add is rejected by the store
	apitest.New().
		Handler(ts.handler).
		Post("/favorites/prop-1").
		Header("Authorization", bearer).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.message", "you have already favorited this property")).
		End()

	apitest.New().
		Handler(ts.handler).
		Get("/favorites/"+creds.ID).
		Header("Authorization", bearer).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		End()

	apitest.New().
		Handler(ts.handler).
		Delete("/favorites/prop-1").
		Header("Authorization", bearer).
		Expect(t).
		Status(http.StatusOK).
		End()

	// removing again is a 404
	apitest.New().
		Handler(ts.handler).
		Delete("/favorites/prop-1").
		Header("Authorization", bearer).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.New().
		Handler(ts.handler).
		Get("/favorites/"+creds.ID).
		Header("Authorization", bearer).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 0)).
		End()
}

func TestPropertyLifecycle(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	creds := ts.register(t, "frank", "pw")
	bearer := "Bearer " + creds.Token

	result := apitest.New().
		Handler(ts.handler).
		Post("/properties").
		Header("Authorization", bearer).
		JSON(map[string]any{"title": "Harbour flat", "price": 420000}).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$.id")).
		Assert(jsonpath.Present("$.image")).
		End()
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(result.Response.Body).Decode(&created))

	// publicly listable without auth
	apitest.New().
		Handler(ts.handler).
		Get("/properties").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		End()

	apitest.New().
		Handler(ts.handler).
		Patch("/properties/"+created.ID).
		Header("Authorization", bearer).
		JSON(map[string]any{"title": "Harbour flat (reduced)"}).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.title", "Harbour flat (reduced)")).
		End()

	apitest.New().
		Handler(ts.handler).
		Delete("/properties/"+created.ID).
		Header("Authorization", bearer).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.New().
		Handler(ts.handler).
		Get("/properties/"+created.ID).
		Header("Authorization", bearer).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.error", "Not found")).
		End()
}

func TestChatMarkReadUnknownMessage(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	creds := ts.register(t, "grace", "pw")

	apitest.New().
		Handler(ts.handler).
		Patch("/chat/no-such-id/read").
		Header("Authorization", creds.ID).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestChatSendAndRead(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	creds := ts.register(t, "henry", "pw")

	result := apitest.New().
		Handler(ts.handler).
		Post("/chat/office-1/prop-1").
		Header("Authorization", creds.ID).
		JSON(map[string]string{"body": "is this still available?"}).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.senderId", creds.ID)).
		Assert(jsonpath.Equal("$.read", false)).
		End()
	var msg struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(result.Response.Body).Decode(&msg))

	apitest.New().
		Handler(ts.handler).
		Patch("/chat/"+msg.ID+"/read").
		Header("Authorization", creds.ID).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.New().
		Handler(ts.handler).
		Get("/chat/office-1/prop-1").
		Header("Authorization", creds.ID).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$[0].read", true)).
		End()
}
