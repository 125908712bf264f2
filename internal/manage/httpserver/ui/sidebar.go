package ui

import (
	"strings"

	"github.com/blademainer/itranswarp/internal/manage/rbac"
)

// NavItem is one sidebar link.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

type sidebarSection struct {
	label      string
	path       string
	capability rbac.Capability
}

var sidebarSections = []sidebarSection{
	{label: "Articles", path: "/article/", capability: rbac.CapArticles},
	{label: "Web Pages", path: "/webpage/", capability: rbac.CapWebpages},
	{label: "Wikis", path: "/wiki/", capability: rbac.CapWikis},
	{label: "Discuss", path: "/discuss/", capability: rbac.CapDiscuss},
	{label: "Attachments", path: "/attachment/", capability: rbac.CapAttachments},
	{label: "Users", path: "/user/", capability: rbac.CapUsers},
	{label: "Navigation", path: "/navigation/", capability: rbac.CapNavigation},
	{label: "Settings", path: "/setting/", capability: rbac.CapSettings},
}

// Sidebar lists the sections caps allows, marking the one containing currentPath.
func Sidebar(basePath, currentPath string, caps map[rbac.Capability]bool) []NavItem {
	current := normalizeRoute(currentPath)
	items := make([]NavItem, 0, len(sidebarSections))
	for _, s := range sidebarSections {
		if !caps[s.capability] {
			continue
		}
		href := JoinBasePath(basePath, s.path)
		target := normalizeRoute(href)
		items = append(items, NavItem{
			Label:  s.label,
			Href:   href,
			Active: current == target || strings.HasPrefix(current, target+"/"),
		})
	}
	return items
}
