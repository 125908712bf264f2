package ui

import (
	"net/http"

	"github.com/blademainer/itranswarp/internal/manage/rbac"
)

// Route binds a method and a pattern relative to the console base path to a handler.
type Route struct {
	Method     string
	Pattern    string
	Capability rbac.Capability
	// Public routes are served without authentication.
	Public  bool
	Handler HandlerFunc
}

// Routes returns the console route table. A trailing list segment is optional, so
// list views appear under both "/area/" and "/area/<area>_list".
func Routes(h *Handlers) []Route {
	var routes []Route
	add := func(capability rbac.Capability, handler HandlerFunc, patterns ...string) {
		for _, p := range patterns {
			routes = append(routes, Route{Method: http.MethodGet, Pattern: p, Capability: capability, Handler: handler})
		}
	}

	routes = append(routes,
		Route{Method: http.MethodGet, Pattern: "/signin", Public: true, Handler: h.Signin},
		Route{Method: http.MethodGet, Pattern: "/", Handler: h.Root},
	)

	add(rbac.CapArticles, h.listView(articles.listTemplate), "/article/", "/article/article_list")
	add(rbac.CapArticles, h.listView(categories.listTemplate), "/article/category_list")
	add(rbac.CapArticles, h.createView(articles), "/article/create_article")
	add(rbac.CapArticles, h.editView(articles), "/article/edit_article")
	add(rbac.CapArticles, h.createView(categories), "/article/create_category")
	add(rbac.CapArticles, h.editView(categories), "/article/edit_category")

	add(rbac.CapWebpages, h.listView(webpages.listTemplate), "/webpage/", "/webpage/webpage_list")
	add(rbac.CapWebpages, h.createView(webpages), "/webpage/create_webpage")
	add(rbac.CapWebpages, h.editView(webpages), "/webpage/edit_webpage")

	add(rbac.CapWikis, h.listView(wikis.listTemplate), "/wiki/", "/wiki/wiki_list")
	add(rbac.CapWikis, h.createView(wikis), "/wiki/create_wiki")
	add(rbac.CapWikis, h.editView(wikis), "/wiki/edit_wiki")
	add(rbac.CapWikis, h.WikiTree, "/wiki/wiki_tree")
	add(rbac.CapWikis, h.EditWikiPage, "/wiki/edit_wikipage")

	add(rbac.CapDiscuss, h.BoardList, "/discuss/", "/discuss/index")
	add(rbac.CapDiscuss, h.CreateBoard, "/discuss/create_board")
	add(rbac.CapDiscuss, h.EditBoard, "/discuss/edit_board")
	add(rbac.CapDiscuss, h.ReplyList, "/discuss/reply_list")
	add(rbac.CapDiscuss, h.TopicList, "/discuss/topic_list")

	add(rbac.CapAttachments, h.listView(attachmentListTemplate), "/attachment/", "/attachment/attachment_list")

	add(rbac.CapUsers, h.UserList, "/user/", "/user/user_list")

	add(rbac.CapNavigation, h.listView(navigations.listTemplate), "/navigation/", "/navigation/navigation_list")
	add(rbac.CapNavigation, h.CreateNavigation, "/navigation/create_navigation")

	add(rbac.CapSettings, h.WebsiteSettings, "/setting/", "/setting/website")

	return routes
}
