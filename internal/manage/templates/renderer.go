// Package templates holds the console page templates and renders them as templ components.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

//go:embed pages
var pages embed.FS

const (
	layoutFile  = "layout.html"
	pagesPrefix = "manage/"
)

// Renderer executes named page templates inside the shared console layout.
// Template names follow the page path, e.g. "manage/article/article_list.html".
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded page. Parsing errors are programming errors and are returned as-is.
func New() (*Renderer, error) {
	root, err := fs.Sub(pages, "pages")
	if err != nil {
		return nil, err
	}
	return NewFromFS(root)
}

// NewFromFS parses pages from root, which must contain layout.html and a manage/ tree.
func NewFromFS(root fs.FS) (*Renderer, error) {
	layout, err := template.New(layoutFile).Funcs(Funcs()).ParseFS(root, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("templates: parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	err = fs.WalkDir(root, strings.TrimSuffix(pagesPrefix, "/"), func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != ".html" {
			return nil
		}
		page, err := layout.Clone()
		if err != nil {
			return err
		}
		if _, err := page.ParseFS(root, name); err != nil {
			return fmt.Errorf("templates: parse %s: %w", name, err)
		}
		r.pages[name] = page
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Names lists the parsed page names in lexical order.
func (r *Renderer) Names() []string {
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render writes page name to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("templates: unknown page %q", name)
	}
	return page.ExecuteTemplate(w, layoutFile, data)
}

// Component returns page name as a templ component bound to data.
func (r *Renderer) Component(name string, data any) (templ.Component, error) {
	if _, ok := r.pages[name]; !ok {
		return nil, fmt.Errorf("templates: unknown page %q", name)
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return r.Render(w, name, data)
	}), nil
}
