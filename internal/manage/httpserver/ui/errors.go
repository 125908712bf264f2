package ui

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/blademainer/itranswarp/internal/manage/apierror"
	"github.com/blademainer/itranswarp/internal/manage/logging"
)

// HandlerFunc is the signature shared by every console route.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.Handler. It is the single place errors become responses:
// not-found errors answer 404, everything else 500. Nothing has been written when fn fails.
func Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			WriteError(w, r, err)
		}
	})
}

// WriteError logs err and writes the matching status page.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())
	switch {
	case errors.Is(err, apierror.ErrNotFound):
		field, _ := apierror.FieldOf(err)
		logger.Debug("not found", zap.String("field", field), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	case errors.Is(err, context.Canceled):
		logger.Debug("request canceled", zap.Error(err))
	default:
		logger.Error("request failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
