package ui

import (
	"net/http"
)

// Root sends the console root to the article list.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, h.link("/article/"), http.StatusFound)
	return nil
}

// Signin renders the sign-in page. It runs without authentication.
func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) error {
	m, err := h.publicModel(r)
	if err != nil {
		return err
	}
	q := r.URL.Query()
	m.Next = SafeNext(h.basePath, q.Get("next"))
	switch {
	case q.Get("reason") == "expired":
		m.Error = "Your session has expired. Please sign in again."
	case q.Get("error") == "invalid":
		m.Error = "The sign-in token was rejected."
	case q.Get("status") == "signed_out":
		m.Message = "You have been signed out."
	}
	return h.render(w, r, signinTemplate, m)
}

// UserList renders the user list with the server time in Unix milliseconds.
func (h *Handlers) UserList(w http.ResponseWriter, r *http.Request) error {
	m, err := h.model(r)
	if err != nil {
		return err
	}
	m.PageIndex = PageIndex(r)
	m.CurrentTime = h.now().UnixMilli()
	return h.render(w, r, userListTemplate, m)
}

// CreateNavigation renders the navigation form offering every module's menu entries.
func (h *Handlers) CreateNavigation(w http.ResponseWriter, r *http.Request) error {
	menus, err := h.menus.Aggregate(r.Context())
	if err != nil {
		return err
	}
	m, err := h.model(r)
	if err != nil {
		return err
	}
	m.Menus = menus
	m.Form = &Form{
		Name:     "Create " + navigations.label,
		Action:   navigations.api,
		Redirect: navigations.redirect,
	}
	return h.render(w, r, navigations.formTemplate, m)
}

// WebsiteSettings renders the settings form.
func (h *Handlers) WebsiteSettings(w http.ResponseWriter, r *http.Request) error {
	m, err := h.model(r)
	if err != nil {
		return err
	}
	m.Form = &Form{
		Name:     "Edit Website Settings",
		Action:   "/api/settings/website",
		Redirect: "website",
	}
	return h.render(w, r, settingFormTemplate, m)
}
