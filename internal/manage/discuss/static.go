package discuss

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/blademainer/itranswarp/internal/manage/apierror"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
)

// StaticService keeps boards, topics and replies in memory.
type StaticService struct {
	mu       sync.RWMutex
	boards   []Board
	topics   []Topic
	replies  []Reply
	pageSize int
	err      error
}

// NewStaticService constructs an empty StaticService.
func NewStaticService() *StaticService {
	return &StaticService{pageSize: DefaultPageSize}
}

// SetPageSize overrides the page size used for listings.
func (s *StaticService) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size > 0 {
		s.pageSize = size
	}
}

// AddBoard registers a board.
func (s *StaticService) AddBoard(b Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards = append(s.boards, b)
	sort.SliceStable(s.boards, func(i, j int) bool {
		return s.boards[i].DisplayOrder < s.boards[j].DisplayOrder
	})
}

// AddTopic registers a topic.
func (s *StaticService) AddTopic(t Topic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, t)
}

// AddReply registers a reply.
func (s *StaticService) AddReply(r Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, r)
}

// FailWith makes subsequent calls return err; nil restores normal behaviour.
func (s *StaticService) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Boards returns boards ordered by display order.
func (s *StaticService) Boards(ctx context.Context) ([]Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]Board(nil), s.boards...), nil
}

// Board returns a single board.
func (s *StaticService) Board(ctx context.Context, id string) (*Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, b := range s.boards {
		if b.ID == id {
			board := b
			return &board, nil
		}
	}
	return nil, fmt.Errorf("discuss: board %s: %w", id, apierror.NotFound("board"))
}

// AllReplies pages through replies across every board, newest first.
func (s *StaticService) AllReplies(ctx context.Context, page int) (*ReplyPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	replies := append([]Reply(nil), s.replies...)
	sort.SliceStable(replies, func(i, j int) bool {
		return replies[i].CreatedAt > replies[j].CreatedAt
	})
	p := NewPage(page, s.pageSize, len(replies))
	return &ReplyPage{Page: p, Replies: window(replies, p)}, nil
}

// Topics pages through the topics of one board, newest first.
func (s *StaticService) Topics(ctx context.Context, boardID string, page int) (*TopicPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	var topics []Topic
	for _, t := range s.topics {
		if t.BoardID == boardID {
			topics = append(topics, t)
		}
	}
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].CreatedAt > topics[j].CreatedAt
	})
	p := NewPage(page, s.pageSize, len(topics))
	return &TopicPage{Page: p, Topics: window(topics, p)}, nil
}

// NavigationMenus lists every board as a menu entry. A nil
// service lists nothing.
func (s *StaticService) NavigationMenus(ctx context.Context) ([]navigation.Menu, error) {
	if s == nil {
		return nil, nil
	}
	boards, err := s.Boards(ctx)
	if err != nil {
		return nil, err
	}
	return menusFor(boards), nil
}

func window[T any](items []T, p Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.ItemsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
