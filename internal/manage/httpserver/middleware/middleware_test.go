package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/blademainer/itranswarp/internal/manage/logging"
	"github.com/blademainer/itranswarp/internal/manage/rbac"
)

type mockAuthenticator struct {
	token string
	user  *User
	err   error
}

func (m *mockAuthenticator) Authenticate(_ *http.Request, token string) (*User, error) {
	if token != m.token {
		return nil, ErrUnauthorized
	}
	return m.user, m.err
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddleware(t *testing.T) {
	auth := &mockAuthenticator{
		token: "valid",
		user:  &User{UID: "user-1", Roles: []string{"editor"}},
	}
	handler := Auth(auth, "/manage/signin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "user-1", user.UID)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing token redirects with next", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/manage/wiki/wiki_tree?id=abc", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusFound, rr.Code)
		location, err := url.Parse(rr.Header().Get("Location"))
		require.NoError(t, err)
		require.Equal(t, "/manage/signin", location.Path)
		require.Equal(t, "/manage/wiki/wiki_tree?id=abc", location.Query().Get("next"))
		require.Empty(t, location.Query().Get("reason"))
	})

	t.Run("bearer header passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/manage/", nil)
		req.Header.Set("Authorization", "Bearer valid")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("auth cookie passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/manage/", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "valid"})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("expired token marks the redirect", func(t *testing.T) {
		auth.err = NewAuthError(ReasonTokenExpired, errors.New("expired"))
		defer func() { auth.err = nil }()

		req := httptest.NewRequest(http.MethodGet, "/manage/", nil)
		req.Header.Set("Authorization", "Bearer valid")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusFound, rr.Code)
		require.Contains(t, rr.Header().Get("Location"), "reason=expired")
	})
}

func TestDevAuthenticator(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	user, err := DevAuthenticator().Authenticate(req, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"admin"}, user.Roles)

	_, err = DevAuthenticator().Authenticate(req, " ")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, ReasonMissingToken, authErr.Reason)
}

func TestCSRFMiddleware(t *testing.T) {
	mw := CSRF(CSRFConfig{CookieName: "csrf"})

	t.Run("issues cookie on GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/manage/signin", nil)
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NotEmpty(t, CSRFTokenFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var found bool
		for _, c := range rr.Result().Cookies() {
			if c.Name == "csrf" && c.Value != "" {
				found = true
			}
		}
		require.True(t, found)
	})

	t.Run("rejects unsafe request without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/manage/signin", nil)
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "token"})
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
		require.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("accepts matching header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/manage/signin", nil)
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "token"})
		req.Header.Set("X-CSRF-Token", "token")
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("accepts matching form field", func(t *testing.T) {
		form := url.Values{CSRFFormField: {"token"}}
		req := httptest.NewRequest(http.MethodPost, "/manage/signin", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "token"})
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("rejects mismatched form field", func(t *testing.T) {
		form := url.Values{CSRFFormField: {"other"}}
		req := httptest.NewRequest(http.MethodPost, "/manage/signin", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf", Value: "token"})
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestRequireCapability(t *testing.T) {
	handler := RequireCapability(rbac.CapUsers)(http.HandlerFunc(okHandler))

	cases := []struct {
		name string
		user *User
		want int
	}{
		{name: "anonymous", user: nil, want: http.StatusForbidden},
		{name: "editor", user: &User{UID: "e", Roles: []string{"editor"}}, want: http.StatusForbidden},
		{name: "admin", user: &User{UID: "a", Roles: []string{"admin"}}, want: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/manage/user/", nil)
			if tc.user != nil {
				req = req.WithContext(ContextWithUser(req.Context(), tc.user))
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			require.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestNoStoreMiddleware(t *testing.T) {
	rr := httptest.NewRecorder()
	NoStore()(http.HandlerFunc(okHandler)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	require.Equal(t, "no-cache", rr.Header().Get("Pragma"))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(RequestLogger(zap.New(core)))
	router.Get("/wiki/{id}", func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("inside")
		http.NotFound(w, r)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/wiki/abc", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	inside := logs.FilterMessage("inside").All()
	require.Len(t, inside, 1)
	require.NotEmpty(t, inside[0].ContextMap()["request_id"])

	done := logs.FilterMessage("request completed").All()
	require.Len(t, done, 1)
	fields := done[0].ContextMap()
	require.Equal(t, zapcore.WarnLevel, done[0].Level)
	require.EqualValues(t, http.StatusNotFound, fields["status"])
	require.Equal(t, "/wiki/{id}", fields["route"])
	require.Equal(t, "GET", fields["method"])
}
