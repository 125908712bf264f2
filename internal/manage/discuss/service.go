package discuss

import (
	"context"

	"github.com/blademainer/itranswarp/internal/manage/navigation"
	"github.com/blademainer/itranswarp/internal/manage/user"
)

// DefaultPageSize is the number of topics or replies per page.
const DefaultPageSize = 20

// Board is a discussion forum. CreatedAt, here and on Topic and Reply, is in
// Unix milliseconds as the itranswarp API stores it.
type Board struct {
	ID           string `json:"id"`
	Tag          string `json:"tag"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Locked       bool   `json:"locked"`
	Topics       int    `json:"topics"`
	DisplayOrder int    `json:"display_order"`
	CreatedAt    int64  `json:"created_at"`
}

// Topic is a thread inside a board.
type Topic struct {
	ID        string     `json:"id"`
	BoardID   string     `json:"board_id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Replies   int        `json:"replies"`
	Locked    bool       `json:"locked"`
	CreatedAt int64      `json:"created_at"`
	User      *user.User `json:"user,omitempty"`
}

// BoundUserID implements user.Bindable.
func (t *Topic) BoundUserID() string { return t.UserID }

// BindUser implements user.Bindable.
func (t *Topic) BindUser(u *user.User) { t.User = u }

// Reply is a post answering a topic.
type Reply struct {
	ID        string     `json:"id"`
	TopicID   string     `json:"topic_id"`
	UserID    string     `json:"user_id"`
	Content   string     `json:"content"`
	Deleted   bool       `json:"deleted"`
	CreatedAt int64      `json:"created_at"`
	User      *user.User `json:"user,omitempty"`
}

// BoundUserID implements user.Bindable.
func (r *Reply) BoundUserID() string { return r.UserID }

// BindUser implements user.Bindable.
func (r *Reply) BindUser(u *user.User) { r.User = u }

// Page describes one page of a paginated listing.
type Page struct {
	Index        int `json:"index"`
	ItemsPerPage int `json:"item_per_page"`
	Total        int `json:"total"`
	Pages        int `json:"pages"`
}

// NewPage computes page counts for total items. Index is clamped to at least 1.
func NewPage(index, itemsPerPage, total int) Page {
	if index < 1 {
		index = 1
	}
	if itemsPerPage < 1 {
		itemsPerPage = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	pages := (total + itemsPerPage - 1) / itemsPerPage
	return Page{Index: index, ItemsPerPage: itemsPerPage, Total: total, Pages: pages}
}

// Offset returns the number of items preceding the page.
func (p Page) Offset() int {
	return (p.Index - 1) * p.ItemsPerPage
}

// TopicPage is a page of topics.
type TopicPage struct {
	Page   Page    `json:"page"`
	Topics []Topic `json:"topics"`
}

// ReplyPage is a page of replies.
type ReplyPage struct {
	Page    Page    `json:"page"`
	Replies []Reply `json:"replies"`
}

// Service exposes discussion data to the console.
type Service interface {
	Boards(ctx context.Context) ([]Board, error)
	// Board returns the board identified by id. A missing board is reported as
	// an apierror.ErrNotFound error or a nil board.
	Board(ctx context.Context, id string) (*Board, error)
	AllReplies(ctx context.Context, page int) (*ReplyPage, error)
	Topics(ctx context.Context, boardID string, page int) (*TopicPage, error)
}

func menusFor(boards []Board) []navigation.Menu {
	menus := make([]navigation.Menu, 0, len(boards))
	for _, b := range boards {
		menus = append(menus, navigation.Menu{
			Name: b.Name,
			URL:  "/discuss/" + b.ID,
		})
	}
	return menus
}
