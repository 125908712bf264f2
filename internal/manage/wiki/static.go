package wiki

import (
	"context"
	"fmt"
	"sync"

	"github.com/blademainer/itranswarp/internal/manage/apierror"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
)

// StaticService keeps wikis and pages in memory.
type StaticService struct {
	mu    sync.RWMutex
	wikis []Wiki
	pages map[string]WikiPage
	err   error
}

// NewStaticService constructs a StaticService seeded with wikis.
func NewStaticService(wikis ...Wiki) *StaticService {
	return &StaticService{
		wikis: append([]Wiki(nil), wikis...),
		pages: make(map[string]WikiPage),
	}
}

// AddPage registers a wiki page.
func (s *StaticService) AddPage(page WikiPage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[page.ID] = page
}

// FailWith makes subsequent calls return err; nil restores normal behaviour.
func (s *StaticService) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Wikis returns the registered wikis.
func (s *StaticService) Wikis(ctx context.Context) ([]Wiki, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]Wiki(nil), s.wikis...), nil
}

// WikiPage returns the page identified by id.
func (s *StaticService) WikiPage(ctx context.Context, id string) (*WikiPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	page, ok := s.pages[id]
	if !ok {
		return nil, fmt.Errorf("wiki: page %s: %w", id, apierror.NotFound("wikipage"))
	}
	return &page, nil
}

// NavigationMenus lists every wiki as a menu entry. A nil
// service lists nothing.
func (s *StaticService) NavigationMenus(ctx context.Context) ([]navigation.Menu, error) {
	if s == nil {
		return nil, nil
	}
	wikis, err := s.Wikis(ctx)
	if err != nil {
		return nil, err
	}
	return menusFor(wikis), nil
}
