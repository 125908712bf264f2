package ui

import (
	"context"
	"net/http"

	"github.com/blademainer/itranswarp/internal/manage/apierror"
	"github.com/blademainer/itranswarp/internal/manage/discuss"
	"github.com/blademainer/itranswarp/internal/manage/user"
)

// BoardList renders every discussion board.
func (h *Handlers) BoardList(w http.ResponseWriter, r *http.Request) error {
	boards, err := h.discuss.Boards(r.Context())
	if err != nil {
		return err
	}
	m, err := h.model(r)
	if err != nil {
		return err
	}
	m.Boards = boards
	return h.render(w, r, boardListTemplate, m)
}

// CreateBoard renders an empty board form.
func (h *Handlers) CreateBoard(w http.ResponseWriter, r *http.Request) error {
	m, err := h.model(r)
	if err != nil {
		return err
	}
	m.Board = &discuss.Board{}
	m.Form = &Form{
		Name:     "Create Board",
		Action:   "/api/boards",
		Redirect: h.link("/discuss/"),
	}
	return h.render(w, r, boardFormTemplate, m)
}

// EditBoard renders the board form for an existing board.
func (h *Handlers) EditBoard(w http.ResponseWriter, r *http.Request) error {
	id, err := GetID(r)
	if err != nil {
		return err
	}
	board, err := h.board(r.Context(), id)
	if err != nil {
		return err
	}
	m, err := h.model(r)
	if err != nil {
		return err
	}
	m.ID = id
	m.Board = board
	m.Form = &Form{
		Name:     "Edit Board",
		Action:   "/api/boards/" + id + "/",
		Redirect: h.link("/discuss/"),
	}
	return h.render(w, r, boardFormTemplate, m)
}

// ReplyList renders one page of replies across all boards with their authors.
func (h *Handlers) ReplyList(w http.ResponseWriter, r *http.Request) error {
	index := PageIndex(r)
	page, err := h.discuss.AllReplies(r.Context(), index)
	if err != nil {
		return err
	}
	if page == nil {
		page = &discuss.ReplyPage{Page: discuss.NewPage(index, 0, 0)}
	}
	records := make([]user.Bindable, len(page.Replies))
	for i := range page.Replies {
		records[i] = &page.Replies[i]
	}
	if err := h.users.BindUsers(r.Context(), records); err != nil {
		return err
	}
	m, err := h.model(r)
	if err != nil {
		return err
	}
	m.PageIndex = index
	m.Page = &page.Page
	m.Replies = page.Replies
	return h.render(w, r, replyListTemplate, m)
}

// TopicList renders one page of a board's topics with their authors.
func (h *Handlers) TopicList(w http.ResponseWriter, r *http.Request) error {
	boardID, err := queryID(r, "board_id")
	if err != nil {
		return err
	}
	board, err := h.board(r.Context(), boardID)
	if err != nil {
		return err
	}
	index := PageIndex(r)
	page, err := h.discuss.Topics(r.Context(), board.ID, index)
	if err != nil {
		return err
	}
	if page == nil {
		page = &discuss.TopicPage{Page: discuss.NewPage(index, 0, 0)}
	}
	records := make([]user.Bindable, len(page.Topics))
	for i := range page.Topics {
		records[i] = &page.Topics[i]
	}
	if err := h.users.BindUsers(r.Context(), records); err != nil {
		return err
	}
	m, err := h.model(r)
	if err != nil {
		return err
	}
	m.PageIndex = index
	m.Board = board
	m.Page = &page.Page
	m.Topics = page.Topics
	return h.render(w, r, topicListTemplate, m)
}

func (h *Handlers) board(ctx context.Context, id string) (*discuss.Board, error) {
	board, err := h.discuss.Board(ctx, id)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apierror.NotFound("board")
	}
	return board, nil
}
