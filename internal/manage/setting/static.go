package setting

import (
	"context"
	"sync"
)

// StaticService serves settings from memory for development and tests.
type StaticService struct {
	mu      sync.RWMutex
	website Website
	err     error
}

// NewStaticService constructs a StaticService. A nil website falls back to DefaultWebsite.
func NewStaticService(website *Website) *StaticService {
	w := DefaultWebsite()
	if website != nil {
		w = *website
	}
	return &StaticService{website: w}
}

// WebsiteSettings returns a copy of the stored settings.
func (s *StaticService) WebsiteSettings(ctx context.Context) (*Website, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	w := s.website
	return &w, nil
}

// Update replaces the stored settings.
func (s *StaticService) Update(website Website) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.website = website
}

// FailWith makes subsequent reads return err; nil restores normal behaviour.
func (s *StaticService) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
