package discuss

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/blademainer/itranswarp/internal/manage/apiclient"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
)

// HTTPService reads discussion data through the REST API.
type HTTPService struct {
	client *apiclient.Client
}

// NewHTTPService constructs a Service backed by client.
func NewHTTPService(client *apiclient.Client) *HTTPService {
	if client == nil {
		panic("discuss: api client is required")
	}
	return &HTTPService{client: client}
}

// Boards lists all boards.
func (s *HTTPService) Boards(ctx context.Context) ([]Board, error) {
	var payload struct {
		Boards []Board `json:"boards"`
	}
	if err := s.client.GetJSON(ctx, "/api/boards", nil, &payload); err != nil {
		return nil, fmt.Errorf("discuss: list boards: %w", err)
	}
	return payload.Boards, nil
}

// Board fetches one board.
func (s *HTTPService) Board(ctx context.Context, id string) (*Board, error) {
	var board Board
	if err := s.client.GetJSON(ctx, "/api/boards/"+url.PathEscape(id), nil, &board); err != nil {
		return nil, fmt.Errorf("discuss: fetch board %s: %w", id, err)
	}
	return &board, nil
}

// AllReplies pages through replies across boards.
func (s *HTTPService) AllReplies(ctx context.Context, page int) (*ReplyPage, error) {
	var payload ReplyPage
	if err := s.client.GetJSON(ctx, "/api/replies", pageQuery(page), &payload); err != nil {
		return nil, fmt.Errorf("discuss: list replies: %w", err)
	}
	return &payload, nil
}

// Topics pages through the topics of a board.
func (s *HTTPService) Topics(ctx context.Context, boardID string, page int) (*TopicPage, error) {
	var payload TopicPage
	endpoint := "/api/boards/" + url.PathEscape(boardID) + "/topics"
	if err := s.client.GetJSON(ctx, endpoint, pageQuery(page), &payload); err != nil {
		return nil, fmt.Errorf("discuss: list topics of %s: %w", boardID, err)
	}
	return &payload, nil
}

// NavigationMenus lists every board as a menu entry. A nil
// service lists nothing.
func (s *HTTPService) NavigationMenus(ctx context.Context) ([]navigation.Menu, error) {
	if s == nil {
		return nil, nil
	}
	boards, err := s.Boards(ctx)
	if err != nil {
		return nil, err
	}
	return menusFor(boards), nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}
