package ui

import (
	"net/http"

	"github.com/blademainer/itranswarp/internal/manage/apierror"
)

// WikiTree renders the page tree of one wiki.
func (h *Handlers) WikiTree(w http.ResponseWriter, r *http.Request) error {
	id, err := GetID(r)
	if err != nil {
		return err
	}
	m, err := h.model(r)
	if err != nil {
		return err
	}
	m.ID = id
	return h.render(w, r, wikiTreeTemplate, m)
}

// EditWikiPage loads the page first because the redirect target is its wiki's tree.
func (h *Handlers) EditWikiPage(w http.ResponseWriter, r *http.Request) error {
	id, err := GetID(r)
	if err != nil {
		return err
	}
	page, err := h.wikis.WikiPage(r.Context(), id)
	if err != nil {
		return err
	}
	if page == nil {
		return apierror.NotFound("wikipage")
	}
	m, err := h.model(r)
	if err != nil {
		return err
	}
	m.ID = id
	m.Form = &Form{
		Name:     "Edit Wiki Page",
		Action:   "/api/wikis/wikipages/" + id,
		Redirect: "wiki_tree?id=" + page.WikiID,
	}
	return h.render(w, r, wikiPageFormTemplate, m)
}
