package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/blademainer/itranswarp/internal/manage/logging"
	"github.com/blademainer/itranswarp/internal/manage/session"
)

// AuthCookieName holds the ID token issued at sign-in.
const AuthCookieName = "manage_auth"

type authContextKey struct{}

// User is the authenticated console operator.
type User struct {
	UID   string
	Email string
	Name  string
	Roles []string
	Token string
}

// Authenticator resolves a bearer token into a User.
type Authenticator interface {
	Authenticate(r *http.Request, token string) (*User, error)
}

// ErrUnauthorized is returned when authentication fails without a more specific cause.
var ErrUnauthorized = errors.New("unauthorized")

// AuthError carries the reason code of a failed authentication attempt.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError constructs an AuthError with the provided reason.
func NewAuthError(reason string, err error) error {
	return &AuthError{Reason: reason, Err: err}
}

const (
	ReasonMissingToken = "missing_token"
	ReasonTokenInvalid = "token_invalid"
	ReasonTokenExpired = "token_expired"
)

// DevAuthenticator accepts any non-empty token as an admin. Only for local development.
func DevAuthenticator() Authenticator {
	return devAuthenticator{}
}

// Auth authenticates every request and redirects failures to signinPath with a next parameter.
func Auth(authenticator Authenticator, signinPath string) func(http.Handler) http.Handler {
	if authenticator == nil {
		authenticator = DevAuthenticator()
	}
	if signinPath == "" {
		signinPath = "/signin"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logging.FromContext(r.Context())

			token := RequestToken(r)
			if token == "" {
				logger.Debug("auth failure", zap.String("reason", ReasonMissingToken))
				destroySession(r.Context())
				redirectToSignin(w, r, signinPath, ReasonMissingToken)
				return
			}

			user, err := authenticator.Authenticate(r, token)
			if err != nil || user == nil {
				reason := ReasonTokenInvalid
				var authErr *AuthError
				if errors.As(err, &authErr) && authErr.Reason != "" {
					reason = authErr.Reason
				}
				if err == nil {
					err = ErrUnauthorized
				}
				logger.Info("auth failure", zap.String("reason", reason), zap.Error(err))
				destroySession(r.Context())
				redirectToSignin(w, r, signinPath, reason)
				return
			}

			if sess, ok := SessionFromContext(r.Context()); ok {
				sess.SetStaff(&session.Staff{
					UID:   user.UID,
					Email: user.Email,
					Name:  user.Name,
					Roles: user.Roles,
				})
			}

			ctx := ContextWithUser(r.Context(), user)
			ctx = logging.WithLogger(ctx, logger.With(zap.String("uid", user.UID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithUser attaches user to ctx.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, authContextKey{}, user)
}

// UserFromContext retrieves the authenticated user if present.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(authContextKey{}).(*User)
	return user, ok && user != nil
}

// RequestToken extracts the ID token from the Authorization header or the auth cookie.
func RequestToken(r *http.Request) string {
	if token := bearer(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if c, err := r.Cookie(AuthCookieName); err == nil {
		if val := strings.TrimSpace(c.Value); val != "" {
			if token := bearer(val); token != "" {
				return token
			}
			return val
		}
	}
	return ""
}

func bearer(value string) string {
	if len(value) < 7 || !strings.EqualFold(value[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(value[7:])
}

func redirectToSignin(w http.ResponseWriter, r *http.Request, signinPath, reason string) {
	target, err := url.Parse(signinPath)
	if err != nil {
		http.Redirect(w, r, signinPath, http.StatusFound)
		return
	}
	q := target.Query()
	q.Set("next", r.URL.RequestURI())
	if reason == ReasonTokenExpired {
		q.Set("reason", "expired")
	}
	target.RawQuery = q.Encode()
	http.Redirect(w, r, target.String(), http.StatusFound)
}

func destroySession(ctx context.Context) {
	if sess, ok := SessionFromContext(ctx); ok {
		sess.Destroy()
	}
}

type devAuthenticator struct{}

func (devAuthenticator) Authenticate(_ *http.Request, token string) (*User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, NewAuthError(ReasonMissingToken, ErrUnauthorized)
	}
	return &User{
		UID:   token,
		Name:  token,
		Roles: []string{"admin"},
		Token: token,
	}, nil
}
