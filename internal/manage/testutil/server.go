package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blademainer/itranswarp/internal/manage/discuss"
	"github.com/blademainer/itranswarp/internal/manage/httpserver"
	"github.com/blademainer/itranswarp/internal/manage/httpserver/middleware"
	"github.com/blademainer/itranswarp/internal/manage/httpserver/ui"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
	"github.com/blademainer/itranswarp/internal/manage/session"
	"github.com/blademainer/itranswarp/internal/manage/setting"
	"github.com/blademainer/itranswarp/internal/manage/user"
	"github.com/blademainer/itranswarp/internal/manage/wiki"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithAuthenticator overrides the authenticator used by the console.
func WithAuthenticator(auth middleware.Authenticator) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Authenticator = auth
	}
}

// WithBasePath sets a custom base path for the console routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithSettings wires a custom settings service.
func WithSettings(service setting.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.UI.Settings = service
	}
}

// WithWikis wires a custom wiki service.
func WithWikis(service wiki.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.UI.Wikis = service
	}
}

// WithDiscuss wires a custom discussion service.
func WithDiscuss(service discuss.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.UI.Discuss = service
	}
}

// WithUsers wires a custom user service.
func WithUsers(service user.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.UI.Users = service
	}
}

// WithMenus sets the navigation aggregator.
func WithMenus(menus *navigation.Aggregator) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.UI.Menus = menus
	}
}

// WithSessions enables cookie sessions with fixed test keys.
func WithSessions(t testing.TB) ServerOption {
	t.Helper()
	mgr, err := session.NewManager(session.Config{
		HashKey:  []byte("0123456789abcdef0123456789abcdef"),
		BlockKey: []byte("fedcba9876543210fedcba9876543210"),
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return func(cfg *httpserver.Config) {
		cfg.Sessions = mgr
	}
}

// WithNow fixes the clock used by the pages.
func WithNow(now time.Time) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.UI.Now = func() time.Time { return now }
	}
}

// NewServer constructs an httptest server running the console HTTP stack with in-memory collaborators.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	wikis := wiki.NewStaticService()
	boards := discuss.NewStaticService()
	cfg := httpserver.Config{
		Address:        ":0",
		BasePath:       "/manage",
		CSRFCookieName: "csrf_token",
		Authenticator:  middleware.DevAuthenticator(),
		UI: ui.Dependencies{
			Settings: setting.NewStaticService(nil),
			Wikis:    wikis,
			Discuss:  boards,
			Users:    user.NewStaticService(),
			Menus:    navigation.NewAggregator(wikis, boards),
		},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := httpserver.New(cfg)
	if err != nil {
		t.Fatalf("httpserver: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
