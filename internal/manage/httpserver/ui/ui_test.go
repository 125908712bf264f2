package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/blademainer/itranswarp/internal/manage/apierror"
	"github.com/blademainer/itranswarp/internal/manage/discuss"
	"github.com/blademainer/itranswarp/internal/manage/httpserver/middleware"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
	"github.com/blademainer/itranswarp/internal/manage/rbac"
	"github.com/blademainer/itranswarp/internal/manage/setting"
	"github.com/blademainer/itranswarp/internal/manage/user"
	"github.com/blademainer/itranswarp/internal/manage/wiki"
)

var (
	articleID  = strings.Repeat("a", IDLength)
	boardID    = strings.Repeat("b", IDLength)
	wikiID     = strings.Repeat("w", IDLength)
	wikiPageID = strings.Repeat("p", IDLength)
	fixedNow   = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
)

type renderCall struct {
	name  string
	model *Model
}

type recordingRenderer struct {
	mu    sync.Mutex
	calls []renderCall
	fail  error
}

func (r *recordingRenderer) Component(name string, data any) (templ.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, renderCall{name: name, model: data.(*Model)})
	fail := r.fail
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if fail != nil {
			return fail
		}
		_, err := io.WriteString(w, "rendered "+name)
		return err
	}), nil
}

func (r *recordingRenderer) last(t *testing.T) renderCall {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.calls, "expected a render")
	return r.calls[len(r.calls)-1]
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type countingSettings struct {
	setting.Service
	calls atomic.Int32
}

func (c *countingSettings) WebsiteSettings(ctx context.Context) (*setting.Website, error) {
	c.calls.Add(1)
	return c.Service.WebsiteSettings(ctx)
}

type nilSettings struct{}

func (nilSettings) WebsiteSettings(context.Context) (*setting.Website, error) {
	return nil, nil
}

type fixture struct {
	handlers *Handlers
	renderer *recordingRenderer
	settings *countingSettings
	static   *setting.StaticService
	wikis    *wiki.StaticService
	discuss  *discuss.StaticService
	users    *user.StaticService
}

func newFixture(t *testing.T, menuModules ...any) *fixture {
	t.Helper()

	static := setting.NewStaticService(&setting.Website{Name: "Test Site"})
	f := &fixture{
		renderer: &recordingRenderer{},
		static:   static,
		settings: &countingSettings{Service: static},
		wikis:    wiki.NewStaticService(wiki.Wiki{ID: wikiID, Name: "Go Wiki"}),
		discuss:  discuss.NewStaticService(),
		users:    user.NewStaticService(user.User{ID: "u1", Name: "Alice"}),
	}
	f.wikis.AddPage(wiki.WikiPage{ID: wikiPageID, WikiID: wikiID, Name: "Intro"})
	f.discuss.AddBoard(discuss.Board{ID: boardID, Name: "General"})

	h, err := NewHandlers(Dependencies{
		BasePath: "/manage",
		Settings: f.settings,
		Wikis:    f.wikis,
		Discuss:  f.discuss,
		Users:    f.users,
		Menus:    navigation.NewAggregator(menuModules...),
		Renderer: f.renderer,
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	f.handlers = h
	return f
}

func (f *fixture) serve(t *testing.T, handler HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.ContextWithUser(req.Context(), &middleware.User{UID: "admin", Roles: []string{"admin"}}))
	rec := httptest.NewRecorder()
	Handle(handler).ServeHTTP(rec, req)
	return rec
}

func routeHandler(t *testing.T, h *Handlers, pattern string) HandlerFunc {
	t.Helper()
	for _, route := range Routes(h) {
		if route.Pattern == pattern {
			return route.Handler
		}
	}
	t.Fatalf("no route %s", pattern)
	return nil
}

func TestGetID(t *testing.T) {
	wide := strings.Repeat("é", IDLength)
	cases := []struct {
		name  string
		query string
		want  string
	}{
		{name: "exactly fifty", query: "?id=" + articleID, want: articleID},
		{name: "fifty multibyte characters", query: "?id=" + url.QueryEscape(wide), want: wide},
		{name: "fifty bytes of multibyte characters", query: "?id=" + url.QueryEscape(strings.Repeat("é", IDLength/2))},
		{name: "short", query: "?id=short"},
		{name: "fifty one", query: "?id=" + articleID + "x"},
		{name: "missing", query: ""},
		{name: "empty", query: "?id="},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := GetID(httptest.NewRequest(http.MethodGet, "/manage/article/edit_article"+tc.query, nil))
			if tc.want != "" {
				require.NoError(t, err)
				require.Equal(t, tc.want, id)
				return
			}
			require.Error(t, err)
			require.Empty(t, id)
			require.Equal(t, "id not found", err.Error())
		})
	}
}

func TestPageIndex(t *testing.T) {
	cases := map[string]int{
		"":         1,
		"?page=0":  1,
		"?page=-4": 1,
		"?page=x":  1,
		"?page=1":  1,
		"?page=7":  7,
	}
	for query, want := range cases {
		require.Equal(t, want, PageIndex(httptest.NewRequest(http.MethodGet, "/manage/article/"+query, nil)), query)
	}
}

func TestRootRedirectsToArticleList(t *testing.T) {
	f := newFixture(t)
	for _, target := range []string{"/manage/", "/manage/?page=3", "/manage/?next=/elsewhere"} {
		rec := f.serve(t, routeHandler(t, f.handlers, "/"), target)
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/manage/article/", rec.Header().Get("Location"))
	}
	require.Zero(t, f.renderer.count())
}

func TestEveryRenderedModelCarriesWebsiteSettings(t *testing.T) {
	f := newFixture(t)
	query := map[string]string{
		"/article/edit_article":  "?id=" + articleID,
		"/article/edit_category": "?id=" + articleID,
		"/webpage/edit_webpage":  "?id=" + articleID,
		"/wiki/edit_wiki":        "?id=" + wikiID,
		"/wiki/wiki_tree":        "?id=" + wikiID,
		"/wiki/edit_wikipage":    "?id=" + wikiPageID,
		"/discuss/edit_board":    "?id=" + boardID,
		"/discuss/topic_list":    "?board_id=" + boardID,
	}

	for _, route := range Routes(f.handlers) {
		if route.Pattern == "/" {
			continue
		}
		t.Run(route.Pattern, func(t *testing.T) {
			before := f.renderer.count()
			rec := f.serve(t, route.Handler, "/manage"+route.Pattern+query[route.Pattern])
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			require.Equal(t, before+1, f.renderer.count())

			call := f.renderer.last(t)
			require.NotNil(t, call.model.WebsiteSettings)
			require.Equal(t, "Test Site", call.model.WebsiteSettings.Name)
			require.Equal(t, "rendered "+call.name, rec.Body.String())
		})
	}
}

func TestNilSettingsFallBackToDefaults(t *testing.T) {
	f := newFixture(t)
	f.settings.Service = nilSettings{}

	rec := f.serve(t, routeHandler(t, f.handlers, "/article/"), "/manage/article/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, setting.DefaultWebsite().Name, f.renderer.last(t).model.WebsiteSettings.Name)
}

func TestMissingSettingsRecordFallsBackToDefaults(t *testing.T) {
	f := newFixture(t)
	f.static.FailWith(fmt.Errorf("setting: fetch website: %w", apierror.ErrNotFound))

	for _, pattern := range []string{"/signin", "/article/"} {
		rec := f.serve(t, routeHandler(t, f.handlers, pattern), "/manage"+pattern)
		require.Equal(t, http.StatusOK, rec.Code, pattern)
		require.Equal(t, setting.DefaultWebsite().Name, f.renderer.last(t).model.WebsiteSettings.Name, pattern)
	}
	require.Equal(t, 2, f.renderer.count())
}

func TestListRoutesCarryPageIndex(t *testing.T) {
	f := newFixture(t)
	lists := []string{"/article/", "/article/article_list", "/article/category_list", "/webpage/", "/wiki/wiki_list",
		"/attachment/", "/user/user_list", "/navigation/"}
	for _, pattern := range lists {
		rec := f.serve(t, routeHandler(t, f.handlers, pattern), "/manage"+pattern)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, f.renderer.last(t).model.PageIndex, pattern)

		rec = f.serve(t, routeHandler(t, f.handlers, pattern), "/manage"+pattern+"?page=-2")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, f.renderer.last(t).model.PageIndex, pattern)

		rec = f.serve(t, routeHandler(t, f.handlers, pattern), "/manage"+pattern+"?page=3")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 3, f.renderer.last(t).model.PageIndex, pattern)
	}
}

func TestUserListStampsCurrentTime(t *testing.T) {
	f := newFixture(t)
	rec := f.serve(t, routeHandler(t, f.handlers, "/user/"), "/manage/user/")
	require.Equal(t, http.StatusOK, rec.Code)

	call := f.renderer.last(t)
	require.Equal(t, userListTemplate, call.name)
	require.Equal(t, fixedNow.UnixMilli(), call.model.CurrentTime)
}

func TestCreateAndEditForms(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		pattern  string
		query    string
		template string
		form     Form
		id       string
	}{
		{
			pattern: "/article/create_article", template: "manage/article/article_form.html",
			form: Form{Name: "Create Article", Action: "/api/articles", Redirect: "article_list"},
		},
		{
			pattern: "/article/edit_article", query: "?id=" + articleID, template: "manage/article/article_form.html",
			form: Form{Name: "Edit Article", Action: "/api/articles/" + articleID, Redirect: "article_list"}, id: articleID,
		},
		{
			pattern: "/article/create_category", template: "manage/article/category_form.html",
			form: Form{Name: "Create Category", Action: "/api/categories", Redirect: "category_list"},
		},
		{
			pattern: "/article/edit_category", query: "?id=" + articleID, template: "manage/article/category_form.html",
			form: Form{Name: "Edit Category", Action: "/api/categories/" + articleID, Redirect: "category_list"}, id: articleID,
		},
		{
			pattern: "/webpage/create_webpage", template: "manage/webpage/webpage_form.html",
			form: Form{Name: "Create Web Page", Action: "/api/webpages", Redirect: "webpage_list"},
		},
		{
			pattern: "/webpage/edit_webpage", query: "?id=" + articleID, template: "manage/webpage/webpage_form.html",
			form: Form{Name: "Edit Web Page", Action: "/api/webpages/" + articleID, Redirect: "webpage_list"}, id: articleID,
		},
		{
			pattern: "/wiki/create_wiki", template: "manage/wiki/wiki_form.html",
			form: Form{Name: "Create Wiki", Action: "/api/wikis", Redirect: "wiki_list"},
		},
		{
			pattern: "/wiki/edit_wiki", query: "?id=" + wikiID, template: "manage/wiki/wiki_form.html",
			form: Form{Name: "Edit Wiki", Action: "/api/wikis/" + wikiID, Redirect: "wiki_tree?id=" + wikiID}, id: wikiID,
		},
		{
			pattern: "/wiki/edit_wikipage", query: "?id=" + wikiPageID, template: "manage/wiki/wikipage_form.html",
			form: Form{Name: "Edit Wiki Page", Action: "/api/wikis/wikipages/" + wikiPageID, Redirect: "wiki_tree?id=" + wikiID}, id: wikiPageID,
		},
		{
			pattern: "/discuss/create_board", template: "manage/discuss/board_form.html",
			form: Form{Name: "Create Board", Action: "/api/boards", Redirect: "/manage/discuss/"},
		},
		{
			pattern: "/discuss/edit_board", query: "?id=" + boardID, template: "manage/discuss/board_form.html",
			form: Form{Name: "Edit Board", Action: "/api/boards/" + boardID + "/", Redirect: "/manage/discuss/"}, id: boardID,
		},
		{
			pattern: "/navigation/create_navigation", template: "manage/navigation/navigation_form.html",
			form: Form{Name: "Create Navigation", Action: "/api/navigations", Redirect: "navigation_list"},
		},
		{
			pattern: "/setting/website", template: "manage/setting/setting_form.html",
			form: Form{Name: "Edit Website Settings", Action: "/api/settings/website", Redirect: "website"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.pattern, func(t *testing.T) {
			rec := f.serve(t, routeHandler(t, f.handlers, tc.pattern), "/manage"+tc.pattern+tc.query)
			require.Equal(t, http.StatusOK, rec.Code)

			call := f.renderer.last(t)
			require.Equal(t, tc.template, call.name)
			require.NotNil(t, call.model.Form)
			require.Equal(t, tc.form, *call.model.Form)
			require.Equal(t, tc.id, call.model.ID)
		})
	}
}

func TestEditRoutesRejectInvalidIDBeforeFetching(t *testing.T) {
	edits := []string{"/article/edit_article", "/article/edit_category", "/webpage/edit_webpage", "/wiki/edit_wiki",
		"/wiki/wiki_tree", "/wiki/edit_wikipage", "/discuss/edit_board"}
	for _, pattern := range edits {
		for _, query := range []string{"", "?id=short", "?id=" + articleID + "z"} {
			f := newFixture(t)
			f.wikis.FailWith(errors.New("must not be called"))
			f.discuss.FailWith(errors.New("must not be called"))

			rec := f.serve(t, routeHandler(t, f.handlers, pattern), "/manage"+pattern+query)
			require.Equal(t, http.StatusNotFound, rec.Code, pattern+query)
			require.Zero(t, f.renderer.count())
			require.Zero(t, f.settings.calls.Load())
		}
	}
}

func TestEditWikiPageFailureSkipsRender(t *testing.T) {
	f := newFixture(t)
	f.wikis.FailWith(errors.New("database unavailable"))

	rec := f.serve(t, routeHandler(t, f.handlers, "/wiki/edit_wikipage"), "/manage/wiki/edit_wikipage?id="+wikiPageID)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Zero(t, f.renderer.count())
}

func TestEditWikiPageMissingPage(t *testing.T) {
	f := newFixture(t)
	rec := f.serve(t, routeHandler(t, f.handlers, "/wiki/edit_wikipage"), "/manage/wiki/edit_wikipage?id="+strings.Repeat("q", IDLength))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, f.renderer.count())
}

func TestEditBoardMissingBoard(t *testing.T) {
	f := newFixture(t)
	rec := f.serve(t, routeHandler(t, f.handlers, "/discuss/edit_board"), "/manage/discuss/edit_board?id="+strings.Repeat("z", IDLength))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, f.renderer.count())
}

func TestEditBoardCarriesBoard(t *testing.T) {
	f := newFixture(t)
	rec := f.serve(t, routeHandler(t, f.handlers, "/discuss/edit_board"), "/manage/discuss/edit_board?id="+boardID)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "General", f.renderer.last(t).model.Board.Name)
}

func TestCreateBoardHasEmptyBoard(t *testing.T) {
	f := newFixture(t)
	rec := f.serve(t, routeHandler(t, f.handlers, "/discuss/create_board"), "/manage/discuss/create_board")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, &discuss.Board{}, f.renderer.last(t).model.Board)
}

func TestBoardList(t *testing.T) {
	f := newFixture(t)
	f.discuss.AddBoard(discuss.Board{ID: "first", Name: "First", DisplayOrder: -1})

	rec := f.serve(t, routeHandler(t, f.handlers, "/discuss/index"), "/manage/discuss/index")
	require.Equal(t, http.StatusOK, rec.Code)

	call := f.renderer.last(t)
	require.Equal(t, boardListTemplate, call.name)
	require.Len(t, call.model.Boards, 2)
	require.Equal(t, "First", call.model.Boards[0].Name)
}

func TestTopicListBindsUsers(t *testing.T) {
	f := newFixture(t)
	f.discuss.AddTopic(discuss.Topic{ID: "t1", BoardID: boardID, UserID: "u1", Name: "Hello", CreatedAt: fixedNow.UnixMilli()})
	f.discuss.AddTopic(discuss.Topic{ID: "t2", BoardID: boardID, UserID: "ghost", Name: "Boo", CreatedAt: fixedNow.Add(-time.Hour).UnixMilli()})
	f.discuss.AddTopic(discuss.Topic{ID: "t3", BoardID: "other", UserID: "u1", Name: "Elsewhere", CreatedAt: fixedNow.UnixMilli()})

	rec := f.serve(t, routeHandler(t, f.handlers, "/discuss/topic_list"), "/manage/discuss/topic_list?board_id="+boardID)
	require.Equal(t, http.StatusOK, rec.Code)

	call := f.renderer.last(t)
	require.Equal(t, topicListTemplate, call.name)
	require.Equal(t, boardID, call.model.Board.ID)
	require.Len(t, call.model.Topics, 2)
	require.Equal(t, "Alice", call.model.Topics[0].User.Name)
	require.Nil(t, call.model.Topics[1].User)
	require.Equal(t, 1, call.model.Page.Index)
	require.Equal(t, 2, call.model.Page.Total)
}

func TestTopicListRequiresBoard(t *testing.T) {
	f := newFixture(t)

	rec := f.serve(t, routeHandler(t, f.handlers, "/discuss/topic_list"), "/manage/discuss/topic_list?board_id=short")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.serve(t, routeHandler(t, f.handlers, "/discuss/topic_list"), "/manage/discuss/topic_list?board_id="+strings.Repeat("x", IDLength))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, f.renderer.count())
}

func TestReplyListPaginatesAndBindsUsers(t *testing.T) {
	f := newFixture(t)
	f.discuss.SetPageSize(2)
	for i, uid := range []string{"u1", "u1", "ghost"} {
		f.discuss.AddReply(discuss.Reply{ID: string(rune('a' + i)), UserID: uid, CreatedAt: fixedNow.Add(-time.Duration(i) * time.Minute).UnixMilli()})
	}

	rec := f.serve(t, routeHandler(t, f.handlers, "/discuss/reply_list"), "/manage/discuss/reply_list?page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	call := f.renderer.last(t)
	require.Equal(t, 2, call.model.PageIndex)
	require.Equal(t, 2, call.model.Page.Pages)
	require.Len(t, call.model.Replies, 1)
	require.Equal(t, "c", call.model.Replies[0].ID)
	require.Nil(t, call.model.Replies[0].User)
}

func TestUserBindingFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.discuss.AddReply(discuss.Reply{ID: "r1", UserID: "u1"})
	f.users.FailWith(errors.New("user store down"))

	rec := f.serve(t, routeHandler(t, f.handlers, "/discuss/reply_list"), "/manage/discuss/reply_list")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Zero(t, f.renderer.count())
}

func TestCreateNavigationAggregatesMenus(t *testing.T) {
	a := navigation.MenuProviderFunc(func(context.Context) ([]navigation.Menu, error) {
		return []navigation.Menu{{Name: "x", URL: "/x"}}, nil
	})
	c := navigation.MenuProviderFunc(func(context.Context) ([]navigation.Menu, error) {
		return []navigation.Menu{{Name: "y", URL: "/y"}, {Name: "z", URL: "/z"}}, nil
	})
	f := newFixture(t, a, struct{}{}, c)

	rec := f.serve(t, routeHandler(t, f.handlers, "/navigation/create_navigation"), "/manage/navigation/create_navigation")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []navigation.Menu{
		{Name: "x", URL: "/x", Index: "0"},
		{Name: "y", URL: "/y", Index: "1"},
		{Name: "z", URL: "/z", Index: "2"},
	}, f.renderer.last(t).model.Menus)
}

func TestCreateNavigationFailsWhenAnyModuleFails(t *testing.T) {
	broken := navigation.MenuProviderFunc(func(context.Context) ([]navigation.Menu, error) {
		return nil, errors.New("boom")
	})
	f := newFixture(t, struct{}{}, broken)

	rec := f.serve(t, routeHandler(t, f.handlers, "/navigation/create_navigation"), "/manage/navigation/create_navigation")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Zero(t, f.renderer.count())
}

func TestSettingsFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.static.FailWith(errors.New("cache unavailable"))

	rec := f.serve(t, routeHandler(t, f.handlers, "/article/"), "/manage/article/")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Zero(t, f.renderer.count())
}

func TestSettingsAreReadPerRequest(t *testing.T) {
	f := newFixture(t)
	handler := routeHandler(t, f.handlers, "/setting/website")

	f.serve(t, handler, "/manage/setting/website")
	f.static.Update(setting.Website{Name: "Renamed"})
	f.serve(t, handler, "/manage/setting/website")

	require.EqualValues(t, 2, f.settings.calls.Load())
	require.Equal(t, "Renamed", f.renderer.last(t).model.WebsiteSettings.Name)
}

func TestRenderFailureAnswers500(t *testing.T) {
	f := newFixture(t)
	f.renderer.fail = errors.New("template exploded")

	rec := f.serve(t, routeHandler(t, f.handlers, "/article/"), "/manage/article/")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSigninModel(t *testing.T) {
	f := newFixture(t)
	handler := routeHandler(t, f.handlers, "/signin")

	req := httptest.NewRequest(http.MethodGet, "/manage/signin?next=/manage/wiki/&reason=expired", nil)
	rec := httptest.NewRecorder()
	Handle(handler).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	call := f.renderer.last(t)
	require.Equal(t, signinTemplate, call.name)
	require.Equal(t, "Test Site", call.model.WebsiteSettings.Name)
	require.Equal(t, "/manage/wiki/", call.model.Next)
	require.NotEmpty(t, call.model.Error)
	require.Nil(t, call.model.User)
	require.Empty(t, call.model.Sidebar)

	req = httptest.NewRequest(http.MethodGet, "/manage/signin?next=https://evil.example/&status=signed_out", nil)
	rec = httptest.NewRecorder()
	Handle(handler).ServeHTTP(rec, req)
	call = f.renderer.last(t)
	require.Equal(t, "/manage/", call.model.Next)
	require.NotEmpty(t, call.model.Message)
}

func TestRoutesRequireCapabilities(t *testing.T) {
	f := newFixture(t)
	seen := make(map[string]bool)
	for _, route := range Routes(f.handlers) {
		require.Equal(t, http.MethodGet, route.Method)
		require.False(t, seen[route.Pattern], "duplicate pattern %s", route.Pattern)
		seen[route.Pattern] = true
		if route.Public || route.Pattern == "/" {
			continue
		}
		require.NotEmpty(t, route.Capability, route.Pattern)
	}
	require.True(t, seen["/article/"])
	require.True(t, seen["/article/article_list"])
	require.Equal(t, rbac.CapUsers, capabilityOf(f.handlers, "/user/"))
}

func capabilityOf(h *Handlers, pattern string) rbac.Capability {
	for _, route := range Routes(h) {
		if route.Pattern == pattern {
			return route.Capability
		}
	}
	return ""
}

func TestNewHandlersValidatesDependencies(t *testing.T) {
	_, err := NewHandlers(Dependencies{})
	require.Error(t, err)

	_, err = NewHandlers(Dependencies{Renderer: &recordingRenderer{}})
	require.ErrorIs(t, err, setting.ErrNotConfigured)
}
