package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/blademainer/itranswarp/internal/manage/logging"
	"github.com/blademainer/itranswarp/internal/manage/rbac"
)

// RequireCapability answers 403 when the authenticated user lacks capability.
func RequireCapability(capability rbac.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !rbac.HasCapability(user.Roles, capability) {
				logging.FromContext(r.Context()).Info("forbidden", zap.String("capability", string(capability)))
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
