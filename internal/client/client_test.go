package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mrcog-admin/internal/domain"
	"mrcog-admin/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, opts...)
}

func staticToken(token string) Option {
	return WithTokenSource(TokenSourceFunc(func() (string, bool) {
		return token, token != ""
	}))
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"questions": [], "total": 0}`))
	}, staticToken("token-123"))

	_, err := c.ListQuestions(context.Background(), dto.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{"token": "fresh"}`))
	}, staticToken(""))

	resp, err := c.Login(context.Background(), dto.LoginRequest{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", resp.Token)
	assert.False(t, hasAuth, "no Authorization header expected, got %q", gotAuth)
}

func TestClient_UnauthorizedFiresHookAndSentinel(t *testing.T) {
	hookCalls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "token expired"}`))
	},
		staticToken("stale"),
		WithOnUnauthorized(func() { hookCalls++ }),
	)

	_, err := c.DashboardStats(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, hookCalls)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
	assert.Equal(t, "token expired", domainErr.Message)
}

func TestClient_ServerErrorEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "database unavailable"}`))
	})

	_, err := c.ListBuckets(context.Background(), dto.AllItems())
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrServer, domainErr.Code)
	assert.Equal(t, "database unavailable", domainErr.Message)
}

func TestClient_MalformedErrorBodyFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.BotStatus(context.Background())
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrServer, domainErr.Code)
	assert.Contains(t, domainErr.Message, "502")
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "bucket not found"}`))
	})

	_, err := c.GetBucket(context.Background(), "missing")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrNotFound, domainErr.Code)
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, time.Second)
	_, err := c.DashboardStats(context.Background())

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrNetwork, domainErr.Code)
}

// Responses with absent nested arrays must come back with empty, non-nil
// collections so downstream rendering stays total.
func TestClient_NormalizesMissingCollections(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/scheduling/buckets":
			w.Write([]byte(`{"total": 1, "buckets": [{"id": "b1", "name": "Monday Obstetrics", "topic": "Obstetrics", "dayOfWeek": "Monday", "maxQuestions": 5, "isActive": true}]}`))
		case "/questions":
			w.Write([]byte(`{"total": 0}`))
		default:
			http.NotFound(w, r)
		}
	})

	buckets, err := c.ListBuckets(context.Background(), dto.AllItems())
	require.NoError(t, err)
	require.Len(t, buckets.Buckets, 1)
	assert.NotNil(t, buckets.Buckets[0].Questions)
	assert.Empty(t, buckets.Buckets[0].Questions)

	questions, err := c.ListQuestions(context.Background(), dto.ListParams{})
	require.NoError(t, err)
	assert.NotNil(t, questions.Questions)
	assert.Empty(t, questions.Questions)
}

func TestClient_ListParamsEncoded(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"questions": []}`))
	})

	active := true
	_, err := c.ListQuestions(context.Background(), dto.ListParams{
		Topic:    "Obstetrics",
		Search:   "preeclampsia",
		IsActive: &active,
		Page:     2,
		Limit:    25,
	})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "topic=Obstetrics")
	assert.Contains(t, gotQuery, "search=preeclampsia")
	assert.Contains(t, gotQuery, "isActive=true")
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "limit=25")
}
