package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/blademainer/itranswarp/internal/manage/logging"
	"github.com/blademainer/itranswarp/internal/manage/session"
)

type sessionContextKey struct{}

// SessionStore is the part of session.Manager the middleware needs.
type SessionStore interface {
	Load(*http.Request) (*session.Session, error)
	New() *session.Session
	Save(http.ResponseWriter, *session.Session) error
	Clear(http.ResponseWriter)
}

// Session attaches the decoded session to the request context and writes it back before the
// handler starts the response.
func Session(store SessionStore) func(http.Handler) http.Handler {
	if store == nil {
		panic("session store is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logging.FromContext(r.Context())

			sess, err := store.Load(r)
			switch {
			case errors.Is(err, session.ErrExpired):
				logger.Debug("session expired, resetting")
				store.Clear(w)
				sess = store.New()
			case err != nil || sess == nil:
				if err != nil {
					logger.Warn("session load failed", zap.Error(err))
				}
				sess = store.New()
			}

			sw := &sessionWriter{ResponseWriter: w, save: func() {
				if err := store.Save(w, sess); err != nil {
					logger.Error("session save failed", zap.Error(err))
				}
			}}
			ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
			next.ServeHTTP(sw, r.WithContext(ctx))
			sw.flush()
		})
	}
}

// SessionFromContext retrieves the session attached to this request.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess, ok && sess != nil
}

// sessionWriter saves the session right before headers are sent, since cookies set after
// WriteHeader are lost.
type sessionWriter struct {
	http.ResponseWriter
	save  func()
	saved bool
}

func (w *sessionWriter) flush() {
	if !w.saved {
		w.saved = true
		w.save()
	}
}

func (w *sessionWriter) WriteHeader(status int) {
	w.flush()
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
