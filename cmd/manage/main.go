package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"github.com/blademainer/itranswarp/internal/manage/apiclient"
	"github.com/blademainer/itranswarp/internal/manage/article"
	"github.com/blademainer/itranswarp/internal/manage/config"
	"github.com/blademainer/itranswarp/internal/manage/discuss"
	"github.com/blademainer/itranswarp/internal/manage/httpserver"
	"github.com/blademainer/itranswarp/internal/manage/httpserver/middleware"
	"github.com/blademainer/itranswarp/internal/manage/httpserver/ui"
	"github.com/blademainer/itranswarp/internal/manage/logging"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
	"github.com/blademainer/itranswarp/internal/manage/session"
	"github.com/blademainer/itranswarp/internal/manage/setting"
	"github.com/blademainer/itranswarp/internal/manage/user"
	"github.com/blademainer/itranswarp/internal/manage/webpage"
	"github.com/blademainer/itranswarp/internal/manage/wiki"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults to $"+config.EnvConfigFile+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("manage server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fb, err := newFirebase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer fb.Close()

	deps, err := buildDependencies(ctx, cfg, fb, logger)
	if err != nil {
		return err
	}

	var sessions middleware.SessionStore
	if cfg.Session.HashKey != "" {
		mgr, err := session.NewManager(session.Config{
			CookiePath:   cfg.Server.BasePath,
			HashKey:      []byte(cfg.Session.HashKey),
			BlockKey:     []byte(cfg.Session.BlockKey),
			CookieSecure: cfg.Session.Secure,
		})
		if err != nil {
			return fmt.Errorf("session manager: %w", err)
		}
		sessions = mgr
	} else {
		logger.Warn("session hash key not set; sessions disabled")
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:        cfg.Server.Address,
		BasePath:       cfg.Server.BasePath,
		Authenticator:  fb.authenticator(),
		Sessions:       sessions,
		CSRFCookieName: cfg.Server.CSRFCookieName,
		CookieSecure:   cfg.Server.CSRFSecure,
		Logger:         logger,
		UI:             deps,
	})
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	logger.Info("manage server listening",
		zap.String("address", cfg.Server.Address),
		zap.String("base_path", cfg.Server.BasePath),
	)

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("manage server stopped")
	return nil
}

// firebaseClients holds the optional Firebase collaborators. The zero value means Firebase is disabled.
type firebaseClients struct {
	auth      middleware.FirebaseTokenVerifier
	firestore *firestore.Client
}

func newFirebase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*firebaseClients, error) {
	clients := &firebaseClients{}
	projectID := cfg.Firebase.ProjectID
	if projectID == "" {
		logger.Warn("firebase project not set; using passthrough authenticator")
		return clients, nil
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	clients.auth = authClient
	logger.Info("firebase authenticator enabled", zap.String("project", projectID))

	if cfg.UseFirestoreSettings() {
		fs, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore: %w", err)
		}
		clients.firestore = fs
	}
	return clients, nil
}

func (c *firebaseClients) authenticator() middleware.Authenticator {
	if c.auth == nil {
		return nil
	}
	return middleware.NewFirebaseAuthenticator(c.auth)
}

func (c *firebaseClients) Close() {
	if c.firestore != nil {
		_ = c.firestore.Close()
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config, fb *firebaseClients, logger *zap.Logger) (ui.Dependencies, error) {
	var (
		categories article.Service
		webpages   webpage.Service
		wikis      wiki.Service
		boards     discuss.Service
		users      user.Service
		settings   setting.Service
	)

	if cfg.API.BaseURL != "" {
		client, err := apiclient.New(cfg.API.BaseURL, cfg.API.Token, &http.Client{Timeout: cfg.APITimeoutDuration()})
		if err != nil {
			return ui.Dependencies{}, err
		}
		categories = article.NewHTTPService(client)
		webpages = webpage.NewHTTPService(client)
		wikis = wiki.NewHTTPService(client)
		boards = discuss.NewHTTPService(client)
		users = user.NewHTTPService(client)
		settings = setting.NewHTTPService(client)
		logger.Info("using REST API collaborators", zap.String("base_url", cfg.API.BaseURL))
	} else {
		categories, webpages, wikis, boards, users = demoServices()
		settings = setting.NewStaticService(nil)
		logger.Warn("api base url not set; using in-memory demo data")
	}

	if fb.firestore != nil {
		fsSettings, err := setting.NewFirestoreService(fb.firestore, cfg.Firebase.SettingsDoc)
		if err != nil {
			return ui.Dependencies{}, err
		}
		settings = fsSettings
		logger.Info("website settings served from firestore", zap.String("doc", cfg.Firebase.SettingsDoc))
	}

	// Areas without a backing service (articles, attachments, navigation) hold their slot with nil.
	menus := navigation.NewAggregator(
		categories,
		nil,
		webpages,
		wikis,
		boards,
		nil,
		nil,
		users,
		settings,
	)

	return ui.Dependencies{
		BasePath: cfg.Server.BasePath,
		Settings: settings,
		Wikis:    wikis,
		Discuss:  boards,
		Users:    users,
		Menus:    menus,
		Now:      time.Now,
	}, nil
}

func demoServices() (*article.StaticService, *webpage.StaticService, *wiki.StaticService, *discuss.StaticService, *user.StaticService) {
	now := time.Now().UnixMilli()
	categories := article.NewStaticService(
		article.Category{ID: demoID("c", 1), Name: "News", Tag: "news"},
		article.Category{ID: demoID("c", 2), Name: "Tutorials", Tag: "tutorial", DisplayOrder: 1},
	)
	webpages := webpage.NewStaticService(
		webpage.Webpage{ID: demoID("p", 1), Alias: "about", Name: "About"},
	)
	wikis := wiki.NewStaticService(
		wiki.Wiki{ID: demoID("w", 1), Name: "Go Tutorial", Tag: "go"},
	)
	wikis.AddPage(wiki.WikiPage{ID: demoID("q", 1), WikiID: demoID("w", 1), Name: "Getting Started"})

	boards := discuss.NewStaticService()
	boards.AddBoard(discuss.Board{ID: demoID("b", 1), Name: "General", Tag: "general", Topics: 1, CreatedAt: now})
	boards.AddTopic(discuss.Topic{ID: demoID("t", 1), BoardID: demoID("b", 1), UserID: demoID("u", 1), Name: "Welcome", Replies: 1, CreatedAt: now})
	boards.AddReply(discuss.Reply{ID: demoID("r", 1), TopicID: demoID("t", 1), UserID: demoID("u", 1), Content: "Hello.", CreatedAt: now})

	users := user.NewStaticService(
		user.User{ID: demoID("u", 1), Name: "Admin", Email: "admin@example.com", Role: user.RoleAdmin},
	)
	return categories, webpages, wikis, boards, users
}

// demoID pads prefix+n to the identifier length the console expects.
func demoID(prefix string, n int) string {
	id := fmt.Sprintf("%s%d", prefix, n)
	for len(id) < ui.IDLength {
		id = "0" + id
	}
	return id
}
