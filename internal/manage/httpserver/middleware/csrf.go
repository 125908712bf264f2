package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/blademainer/itranswarp/internal/manage/logging"
)

type csrfContextKey struct{}

// CSRFFormField is the hidden form input carrying the token.
const CSRFFormField = "_csrf"

// CSRFConfig controls cookie and header names.
type CSRFConfig struct {
	CookieName string
	CookiePath string
	HeaderName string
	MaxAge     time.Duration
	Secure     bool
}

// CSRF checks that unsafe requests echo the current token in the header or the form field.
// When the Session middleware ran first the token lives in the session, so signing in rotates it;
// otherwise it falls back to a double-submit cookie.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = "manage_csrf"
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-CSRF-Token"
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 24 * time.Hour
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				token string
				err   error
			)
			if sess, ok := SessionFromContext(r.Context()); ok {
				token, err = sess.EnsureCSRFToken()
			} else {
				token, err = ensureCSRFCookie(w, r, cfg)
			}
			if err != nil {
				logging.FromContext(r.Context()).Error("csrf token", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if isUnsafeMethod(r.Method) {
				submitted := r.Header.Get(cfg.HeaderName)
				if submitted == "" {
					submitted = r.PostFormValue(CSRFFormField)
				}
				if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
					return
				}
			}

			ctx := context.WithValue(r.Context(), csrfContextKey{}, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFTokenFromContext returns the token issued for the current request.
func CSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(csrfContextKey{}).(string)
	return token
}

func ensureCSRFCookie(w http.ResponseWriter, r *http.Request, cfg CSRFConfig) (string, error) {
	if c, err := r.Cookie(cfg.CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	buf := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     cfg.CookiePath,
		HttpOnly: true,
		Secure:   cfg.Secure || r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(cfg.MaxAge.Seconds()),
	})
	return token, nil
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}
