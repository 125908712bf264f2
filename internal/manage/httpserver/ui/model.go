package ui

import (
	"github.com/blademainer/itranswarp/internal/manage/discuss"
	"github.com/blademainer/itranswarp/internal/manage/httpserver/middleware"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
	"github.com/blademainer/itranswarp/internal/manage/rbac"
	"github.com/blademainer/itranswarp/internal/manage/setting"
)

// Form describes where a console form submits and where the browser goes afterwards.
type Form struct {
	Name     string `json:"name"`
	Action   string `json:"action"`
	Redirect string `json:"redirect"`
}

// Model is the data handed to every console page.
type Model struct {
	// WebsiteSettings is read fresh for every request and is never nil on a rendered page.
	WebsiteSettings *setting.Website

	ID          string
	PageIndex   int
	CurrentTime int64
	Form        *Form

	Boards  []discuss.Board
	Board   *discuss.Board
	Topics  []discuss.Topic
	Replies []discuss.Reply
	Page    *discuss.Page

	Menus []navigation.Menu

	BasePath     string
	CurrentPath  string
	CSRFToken    string
	User         *middleware.User
	Capabilities map[rbac.Capability]bool
	Sidebar      []NavItem
	Next         string
	Error        string
	Message      string
}
