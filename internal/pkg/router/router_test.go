package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smashstrix/smashstrix/internal/pkg/config"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJWT struct {
	claims map[string]jwt.Claims
}

func (f *fakeJWT) Generate(_ jwt.TokenUser) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeJWT) Verify(tokenStr string) (jwt.Claims, error) {
	clm, ok := f.claims[tokenStr]
	if !ok {
		return jwt.Claims{}, jwt.ErrInvalidToken
	}
	return clm, nil
}

type stubCID struct{}

func (stubCID) Generate() string { return "cid-1" }

func newTestRouter(t *testing.T, revoked func(ctx context.Context, tokenID string) bool) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	require.NoError(t, err)

	verifier := &fakeJWT{claims: map[string]jwt.Claims{
		"user-token":    {UserID: 7},
		"staff-token":   {UserID: 8, IsStaff: true},
		"revoked-token": {UserID: 9},
	}}
	verifier.claims["revoked-token"] = func() jwt.Claims {
		clm := jwt.Claims{UserID: 9}
		clm.ID = "revoked-id"
		return clm
	}()

	return New(Options{
		Config:     cfg,
		CID:        stubCID{},
		JWT:        verifier,
		Instrument: instrument.NewNoop(),
		Revoked:    revoked,
		PublicRoutes: map[string][]string{
			http.MethodGet: {"/api/v1/public"},
		},
	})
}

func do(r *Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterEnvelopes(t *testing.T) {
	r := newTestRouter(t, nil)

	r.GET("/api/v1/public", func(req *Request) (any, error) {
		clm := jwt.GetAuth(req.Context())
		return map[string]bool{"authenticated": clm != nil}, nil
	})
	r.GET("/api/v1/private", func(req *Request) (any, error) {
		return map[string]string{"hello": "world"}, nil
	})
	r.GET("/api/v1/fails", func(req *Request) (any, error) {
		return nil, goerror.NewBusiness("account is blocked", goerror.CodeForbidden)
	})

	t.Run("SuccessEnvelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/private", nil)
		req.Header.Set("Authorization", "Bearer user-token")

		rec := do(r, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Message string            `json:"message"`
			Data    map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "success", body.Message)
		assert.Equal(t, "world", body.Data["hello"])
		assert.Equal(t, "cid-1", rec.Header().Get(HeaderCorrelationID))
	})

	t.Run("ErrorEnvelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/fails", nil)
		req.Header.Set("Authorization", "Bearer user-token")

		rec := do(r, req)

		require.Equal(t, http.StatusForbidden, rec.Code)

		var body struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "account is blocked", body.Message)
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		rec := do(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouterAuthentication(t *testing.T) {
	revoked := func(_ context.Context, tokenID string) bool { return tokenID == "revoked-id" }
	r := newTestRouter(t, revoked)

	r.GET("/api/v1/public", func(req *Request) (any, error) {
		clm := jwt.GetAuth(req.Context())
		return map[string]bool{"authenticated": clm != nil}, nil
	})
	r.GET("/api/v1/private", func(req *Request) (any, error) {
		return map[string]string{"ok": "yes"}, nil
	})

	t.Run("PublicWithoutToken", func(t *testing.T) {
		rec := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/public", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	})

	t.Run("PublicWithToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/public", nil)
		req.Header.Set("Authorization", "Bearer staff-token")

		rec := do(r, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	})

	t.Run("PublicWithBadTokenStillServes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/public", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		rec := do(r, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	})

	t.Run("PrivateWithoutToken", func(t *testing.T) {
		rec := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/private", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("PrivateWithBadToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/private", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		rec := do(r, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("PrivateWithRevokedToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/private", nil)
		req.Header.Set("Authorization", "Bearer revoked-token")

		rec := do(r, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("PrivateWithValidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/private", nil)
		req.Header.Set("Authorization", "Bearer user-token")

		rec := do(r, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouterAuthorize(t *testing.T) {
	// Without an enforcer, Authorize falls back to staff only.
	r := newTestRouter(t, nil)
	r.GET("/api/v1/admin", func(req *Request) (any, error) {
		return map[string]string{"ok": "yes"}, nil
	}, r.Authorize("catalog", "read"))

	t.Run("StaffAllowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin", nil)
		req.Header.Set("Authorization", "Bearer staff-token")

		rec := do(r, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("UserDenied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin", nil)
		req.Header.Set("Authorization", "Bearer user-token")

		rec := do(r, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
