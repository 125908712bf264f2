package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	custommw "github.com/blademainer/itranswarp/internal/manage/httpserver/middleware"
	"github.com/blademainer/itranswarp/internal/manage/httpserver/ui"
	"github.com/blademainer/itranswarp/internal/manage/templates"
	"github.com/blademainer/itranswarp/public"
)

// Config holds runtime options for the console HTTP server.
type Config struct {
	Address        string
	BasePath       string
	Authenticator  custommw.Authenticator
	Sessions       custommw.SessionStore
	CSRFCookieName string
	CookieSecure   bool
	RequestTimeout time.Duration
	Logger         *zap.Logger
	// UI supplies the page collaborators. BasePath is taken from Config and a nil
	// Renderer selects the embedded templates.
	UI ui.Dependencies
}

// New constructs the HTTP server with its middleware stack, static assets and console routes.
func New(cfg Config) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	basePath := normalizeBasePath(cfg.BasePath)
	deps := cfg.UI
	deps.BasePath = basePath
	if deps.Renderer == nil {
		renderer, err := templates.New()
		if err != nil {
			return nil, err
		}
		deps.Renderer = renderer
	}
	handlers, err := ui.NewHandlers(deps)
	if err != nil {
		return nil, err
	}

	assets, err := public.Handler()
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(custommw.RequestLogger(logger))
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(timeout))

	router.Handle(public.Prefix+"*", assets)

	authenticator := cfg.Authenticator
	if authenticator == nil {
		logger.Warn("no authenticator configured, accepting any token as admin")
		authenticator = custommw.DevAuthenticator()
	}

	mountManageRoutes(router, basePath, routeOptions{
		Handlers:      handlers,
		Authenticator: authenticator,
		Sessions:      cfg.Sessions,
		CSRF: custommw.CSRFConfig{
			CookieName: cfg.CSRFCookieName,
			CookiePath: basePath,
			Secure:     cfg.CookieSecure,
		},
		CookieSecure: cfg.CookieSecure,
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}

type routeOptions struct {
	Handlers      *ui.Handlers
	Authenticator custommw.Authenticator
	Sessions      custommw.SessionStore
	CSRF          custommw.CSRFConfig
	CookieSecure  bool
}

func mountManageRoutes(router chi.Router, base string, opts routeOptions) {
	signinPath := ui.JoinBasePath(base, "/signin")
	auth := &authHandlers{
		authenticator: opts.Authenticator,
		basePath:      base,
		signinPath:    signinPath,
		secure:        opts.CookieSecure,
	}

	mount := func(r chi.Router) {
		r.Use(custommw.NoStore())
		if opts.Sessions != nil {
			r.Use(custommw.Session(opts.Sessions))
		}
		r.Use(custommw.CSRF(opts.CSRF))

		routes := ui.Routes(opts.Handlers)
		for _, route := range routes {
			if route.Public {
				r.Method(route.Method, route.Pattern, auth.redirectSignedIn(ui.Handle(route.Handler)))
			}
		}
		r.Post("/signin", auth.SigninSubmit)
		r.Get("/signout", auth.Signout)

		r.Group(func(pr chi.Router) {
			pr.Use(custommw.Auth(opts.Authenticator, signinPath))
			for _, route := range routes {
				if route.Public {
					continue
				}
				handler := ui.Handle(route.Handler)
				if route.Capability != "" {
					handler = custommw.RequireCapability(route.Capability)(handler)
				}
				pr.Method(route.Method, route.Pattern, handler)
			}
		})
	}

	if base == "/" {
		router.Group(mount)
		return
	}
	router.Route(base, mount)
}

func normalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/manage"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}
