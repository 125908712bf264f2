// Package article provides the category data the console uses for navigation menus.
package article

import (
	"context"
	"fmt"
	"sync"

	"github.com/blademainer/itranswarp/internal/manage/apiclient"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
)

// Category groups articles.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Tag          string `json:"tag"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

// Service lists article categories.
type Service interface {
	Categories(ctx context.Context) ([]Category, error)
}

// StaticService keeps categories in memory.
type StaticService struct {
	mu         sync.RWMutex
	categories []Category
}

// NewStaticService constructs a StaticService seeded with categories.
func NewStaticService(categories ...Category) *StaticService {
	return &StaticService{categories: append([]Category(nil), categories...)}
}

// Categories returns the stored categories.
func (s *StaticService) Categories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Category(nil), s.categories...), nil
}

// NavigationMenus lists every category as a menu entry. A nil
// service lists nothing.
func (s *StaticService) NavigationMenus(ctx context.Context) ([]navigation.Menu, error) {
	if s == nil {
		return nil, nil
	}
	return categoryMenus(ctx, s)
}

// HTTPService lists categories through the REST API.
type HTTPService struct {
	client *apiclient.Client
}

// NewHTTPService constructs a Service backed by client.
func NewHTTPService(client *apiclient.Client) *HTTPService {
	if client == nil {
		panic("article: api client is required")
	}
	return &HTTPService{client: client}
}

// Categories fetches all categories.
func (s *HTTPService) Categories(ctx context.Context) ([]Category, error) {
	var payload struct {
		Categories []Category `json:"categories"`
	}
	if err := s.client.GetJSON(ctx, "/api/categories", nil, &payload); err != nil {
		return nil, fmt.Errorf("article: list categories: %w", err)
	}
	return payload.Categories, nil
}

// NavigationMenus lists every category as a menu entry. A nil
// service lists nothing.
func (s *HTTPService) NavigationMenus(ctx context.Context) ([]navigation.Menu, error) {
	if s == nil {
		return nil, nil
	}
	return categoryMenus(ctx, s)
}

func categoryMenus(ctx context.Context, svc Service) ([]navigation.Menu, error) {
	categories, err := svc.Categories(ctx)
	if err != nil {
		return nil, err
	}
	menus := make([]navigation.Menu, 0, len(categories))
	for _, c := range categories {
		menus = append(menus, navigation.Menu{
			Name: c.Name,
			URL:  "/category/" + c.ID,
		})
	}
	return menus, nil
}
