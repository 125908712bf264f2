package ui

import (
	"net/url"
	"strings"
)

// JoinBasePath prefixes suffix with the console base path.
func JoinBasePath(basePath, suffix string) string {
	base := strings.TrimSpace(basePath)
	if base == "" {
		base = "/manage"
	}
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	if base == "/" {
		return suffix
	}
	return strings.TrimRight(base, "/") + suffix
}

// SafeNext returns next when it is a local path inside the console, otherwise the console root.
func SafeNext(basePath, next string) string {
	fallback := JoinBasePath(basePath, "/")
	if next == "" || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	root := strings.TrimRight(JoinBasePath(basePath, "/"), "/")
	if u.Path != root && !strings.HasPrefix(u.Path, root+"/") {
		return fallback
	}
	return next
}

func normalizeRoute(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
