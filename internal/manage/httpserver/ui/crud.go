package ui

import (
	"fmt"
	"net/http"
)

// entity describes one area managed through the list/create/edit convention.
// The views differ only in labels, REST endpoints and redirect targets.
type entity struct {
	listTemplate string
	formTemplate string
	label        string
	api          string
	redirect     string
	// editRedirect overrides redirect on the edit form when set.
	editRedirect func(id string) string
}

func (h *Handlers) listView(template string) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		m, err := h.model(r)
		if err != nil {
			return err
		}
		m.PageIndex = PageIndex(r)
		return h.render(w, r, template, m)
	}
}

func (h *Handlers) createView(e entity) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		m, err := h.model(r)
		if err != nil {
			return err
		}
		m.Form = &Form{
			Name:     "Create " + e.label,
			Action:   e.api,
			Redirect: e.redirect,
		}
		return h.render(w, r, e.formTemplate, m)
	}
}

func (h *Handlers) editView(e entity) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := GetID(r)
		if err != nil {
			return err
		}
		m, err := h.model(r)
		if err != nil {
			return err
		}
		redirect := e.redirect
		if e.editRedirect != nil {
			redirect = e.editRedirect(id)
		}
		m.ID = id
		m.Form = &Form{
			Name:     "Edit " + e.label,
			Action:   fmt.Sprintf("%s/%s", e.api, id),
			Redirect: redirect,
		}
		return h.render(w, r, e.formTemplate, m)
	}
}

var (
	articles = entity{
		listTemplate: "manage/article/article_list.html",
		formTemplate: "manage/article/article_form.html",
		label:        "Article",
		api:          "/api/articles",
		redirect:     "article_list",
	}
	categories = entity{
		listTemplate: "manage/article/category_list.html",
		formTemplate: "manage/article/category_form.html",
		label:        "Category",
		api:          "/api/categories",
		redirect:     "category_list",
	}
	webpages = entity{
		listTemplate: "manage/webpage/webpage_list.html",
		formTemplate: "manage/webpage/webpage_form.html",
		label:        "Web Page",
		api:          "/api/webpages",
		redirect:     "webpage_list",
	}
	wikis = entity{
		listTemplate: "manage/wiki/wiki_list.html",
		formTemplate: "manage/wiki/wiki_form.html",
		label:        "Wiki",
		api:          "/api/wikis",
		redirect:     "wiki_list",
		editRedirect: func(id string) string { return "wiki_tree?id=" + id },
	}
	navigations = entity{
		listTemplate: "manage/navigation/navigation_list.html",
		formTemplate: "manage/navigation/navigation_form.html",
		label:        "Navigation",
		api:          "/api/navigations",
		redirect:     "navigation_list",
	}
)

const (
	attachmentListTemplate = "manage/attachment/attachment_list.html"
	userListTemplate       = "manage/user/user_list.html"
	signinTemplate         = "manage/signin.html"
	settingFormTemplate    = "manage/setting/setting_form.html"
	wikiTreeTemplate       = "manage/wiki/wiki_tree.html"
	wikiPageFormTemplate   = "manage/wiki/wikipage_form.html"
	boardListTemplate      = "manage/discuss/board_list.html"
	boardFormTemplate      = "manage/discuss/board_form.html"
	replyListTemplate      = "manage/discuss/reply_list.html"
	topicListTemplate      = "manage/discuss/topic_list.html"
)
