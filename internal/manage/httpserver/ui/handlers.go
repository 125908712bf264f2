package ui

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/blademainer/itranswarp/internal/manage/apierror"
	"github.com/blademainer/itranswarp/internal/manage/discuss"
	"github.com/blademainer/itranswarp/internal/manage/httpserver/middleware"
	"github.com/blademainer/itranswarp/internal/manage/logging"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
	"github.com/blademainer/itranswarp/internal/manage/rbac"
	"github.com/blademainer/itranswarp/internal/manage/setting"
	"github.com/blademainer/itranswarp/internal/manage/user"
	"github.com/blademainer/itranswarp/internal/manage/wiki"
)

// Renderer turns a page name and its model into a component.
type Renderer interface {
	Component(name string, data any) (templ.Component, error)
}

// Dependencies collects the collaborators the console pages read from.
type Dependencies struct {
	BasePath string
	Settings setting.Service
	Wikis    wiki.Service
	Discuss  discuss.Service
	Users    user.Service
	Menus    *navigation.Aggregator
	Renderer Renderer
	Now      func() time.Time
}

// Handlers serves the console pages.
type Handlers struct {
	basePath string
	settings setting.Service
	wikis    wiki.Service
	discuss  discuss.Service
	users    user.Service
	menus    *navigation.Aggregator
	renderer Renderer
	now      func() time.Time
}

// NewHandlers validates deps. Every collaborator except Menus and Now is required.
func NewHandlers(deps Dependencies) (*Handlers, error) {
	switch {
	case deps.Renderer == nil:
		return nil, errors.New("ui: renderer is required")
	case deps.Settings == nil:
		return nil, fmt.Errorf("ui: %w", setting.ErrNotConfigured)
	case deps.Wikis == nil:
		return nil, errors.New("ui: wiki service is required")
	case deps.Discuss == nil:
		return nil, errors.New("ui: discuss service is required")
	case deps.Users == nil:
		return nil, errors.New("ui: user service is required")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	menus := deps.Menus
	if menus == nil {
		menus = navigation.NewAggregator()
	}
	return &Handlers{
		basePath: normalizeRoute(deps.BasePath),
		settings: deps.Settings,
		wikis:    deps.Wikis,
		discuss:  deps.Discuss,
		users:    deps.Users,
		menus:    menus,
		renderer: deps.Renderer,
		now:      now,
	}, nil
}

// BasePath returns the console prefix the handlers generate links under.
func (h *Handlers) BasePath() string {
	return h.basePath
}

// publicModel carries only the website settings and what an anonymous page needs.
func (h *Handlers) publicModel(r *http.Request) (*Model, error) {
	website, err := h.settings.WebsiteSettings(r.Context())
	switch {
	case errors.Is(err, apierror.ErrNotFound):
		// Nothing saved yet; the page itself still exists.
		website = nil
	case err != nil:
		return nil, fmt.Errorf("load website settings: %w", err)
	}
	if website == nil {
		def := setting.DefaultWebsite()
		website = &def
	}
	return &Model{
		WebsiteSettings: website,
		BasePath:        h.basePath,
		CurrentPath:     r.URL.Path,
		CSRFToken:       middleware.CSRFTokenFromContext(r.Context()),
	}, nil
}

// model is the shared builder for authenticated pages.
func (h *Handlers) model(r *http.Request) (*Model, error) {
	m, err := h.publicModel(r)
	if err != nil {
		return nil, err
	}
	if u, ok := middleware.UserFromContext(r.Context()); ok {
		m.User = u
		m.Capabilities = rbac.CapabilitiesForRoles(u.Roles)
		m.Sidebar = Sidebar(h.basePath, r.URL.Path, m.Capabilities)
	}
	return m, nil
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, name string, m *Model) error {
	component, err := h.renderer.Component(name, m)
	if err != nil {
		return err
	}
	templ.Handler(component, templ.WithErrorHandler(renderFailed)).ServeHTTP(w, r)
	return nil
}

func renderFailed(r *http.Request, err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Error("render failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	})
}

func (h *Handlers) link(suffix string) string {
	return JoinBasePath(h.basePath, suffix)
}
