package httpserver

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	custommw "github.com/blademainer/itranswarp/internal/manage/httpserver/middleware"
	"github.com/blademainer/itranswarp/internal/manage/httpserver/ui"
	"github.com/blademainer/itranswarp/internal/manage/logging"
	"github.com/blademainer/itranswarp/internal/manage/session"
)

type authHandlers struct {
	authenticator custommw.Authenticator
	basePath      string
	signinPath    string
	secure        bool
}

// redirectSignedIn skips the sign-in page for operators whose session and token are both present.
func (h *authHandlers) redirectSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := custommw.SessionFromContext(r.Context())
		if ok && sess.Staff() != nil && custommw.RequestToken(r) != "" {
			http.Redirect(w, r, ui.SafeNext(h.basePath, r.URL.Query().Get("next")), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SigninSubmit exchanges a submitted ID token for the auth cookie.
func (h *authHandlers) SigninSubmit(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	next := ui.SafeNext(h.basePath, r.PostFormValue("next"))
	token := strings.TrimSpace(r.PostFormValue("id_token"))

	user, err := h.authenticator.Authenticate(r, token)
	if err != nil || user == nil {
		logger.Info("sign-in rejected", zap.Error(err))
		http.Redirect(w, r, h.signinURL(url.Values{"error": {"invalid"}, "next": {next}}), http.StatusSeeOther)
		return
	}

	var expires time.Time
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.SetStaff(&session.Staff{
			UID:   user.UID,
			Email: user.Email,
			Name:  user.Name,
			Roles: user.Roles,
		})
		expires = sess.ExpiresAt()
	}
	if user.Token != "" {
		token = user.Token
	}
	h.setAuthCookie(w, r, token, expires)

	logger.Info("signed in", zap.String("uid", user.UID))
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Signout clears the auth cookie and the session.
func (h *authHandlers) Signout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.Destroy()
	}
	h.clearAuthCookie(w)
	http.Redirect(w, r, h.signinURL(url.Values{"status": {"signed_out"}}), http.StatusSeeOther)
}

func (h *authHandlers) signinURL(q url.Values) string {
	return h.signinPath + "?" + q.Encode()
}

func (h *authHandlers) setAuthCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time) {
	cookie := &http.Cookie{
		Name:     custommw.AuthCookieName,
		Value:    token,
		Path:     h.basePath,
		HttpOnly: true,
		Secure:   h.secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if !expires.IsZero() {
		cookie.Expires = expires.UTC()
		if remaining := time.Until(expires); remaining > 0 {
			cookie.MaxAge = int(remaining.Round(time.Second).Seconds())
		}
	}
	http.SetCookie(w, cookie)
}

func (h *authHandlers) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     custommw.AuthCookieName,
		Value:    "",
		Path:     h.basePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
