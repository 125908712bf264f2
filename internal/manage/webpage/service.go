// Package webpage provides the standalone web pages the console links from navigation menus.
package webpage

import (
	"context"
	"fmt"
	"sync"

	"github.com/blademainer/itranswarp/internal/manage/apiclient"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
)

// Webpage is a static page addressed by alias.
type Webpage struct {
	ID        string `json:"id"`
	Alias     string `json:"alias"`
	Name      string `json:"name"`
	Draft     bool   `json:"draft"`
	Tags      string `json:"tags"`
	ContentID string `json:"content_id"`
}

// Service lists web pages.
type Service interface {
	Webpages(ctx context.Context) ([]Webpage, error)
}

// StaticService keeps web pages in memory.
type StaticService struct {
	mu    sync.RWMutex
	pages []Webpage
}

// NewStaticService constructs a StaticService seeded with pages.
func NewStaticService(pages ...Webpage) *StaticService {
	return &StaticService{pages: append([]Webpage(nil), pages...)}
}

// Webpages returns the stored pages.
func (s *StaticService) Webpages(ctx context.Context) ([]Webpage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Webpage(nil), s.pages...), nil
}

// NavigationMenus lists published pages as menu entries. A nil
// service lists nothing.
func (s *StaticService) NavigationMenus(ctx context.Context) ([]navigation.Menu, error) {
	if s == nil {
		return nil, nil
	}
	return webpageMenus(ctx, s)
}

// HTTPService lists web pages through the REST API.
type HTTPService struct {
	client *apiclient.Client
}

// NewHTTPService constructs a Service backed by client.
func NewHTTPService(client *apiclient.Client) *HTTPService {
	if client == nil {
		panic("webpage: api client is required")
	}
	return &HTTPService{client: client}
}

// Webpages fetches all pages.
func (s *HTTPService) Webpages(ctx context.Context) ([]Webpage, error) {
	var payload struct {
		Webpages []Webpage `json:"webpages"`
	}
	if err := s.client.GetJSON(ctx, "/api/webpages", nil, &payload); err != nil {
		return nil, fmt.Errorf("webpage: list webpages: %w", err)
	}
	return payload.Webpages, nil
}

// NavigationMenus lists published pages as menu entries. A nil
// service lists nothing.
func (s *HTTPService) NavigationMenus(ctx context.Context) ([]navigation.Menu, error) {
	if s == nil {
		return nil, nil
	}
	return webpageMenus(ctx, s)
}

func webpageMenus(ctx context.Context, svc Service) ([]navigation.Menu, error) {
	pages, err := svc.Webpages(ctx)
	if err != nil {
		return nil, err
	}
	menus := make([]navigation.Menu, 0, len(pages))
	for _, p := range pages {
		if p.Draft {
			continue
		}
		menus = append(menus, navigation.Menu{
			Name: p.Name,
			URL:  "/webpage/" + p.Alias,
		})
	}
	return menus, nil
}
