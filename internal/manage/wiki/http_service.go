package wiki

import (
	"context"
	"fmt"
	"net/url"

	"github.com/blademainer/itranswarp/internal/manage/apiclient"
	"github.com/blademainer/itranswarp/internal/manage/navigation"
)

// HTTPService reads wikis through the REST API.
type HTTPService struct {
	client *apiclient.Client
}

// NewHTTPService constructs a Service backed by client.
func NewHTTPService(client *apiclient.Client) *HTTPService {
	if client == nil {
		panic("wiki: api client is required")
	}
	return &HTTPService{client: client}
}

// Wikis lists all wikis.
func (s *HTTPService) Wikis(ctx context.Context) ([]Wiki, error) {
	var payload struct {
		Wikis []Wiki `json:"wikis"`
	}
	if err := s.client.GetJSON(ctx, "/api/wikis", nil, &payload); err != nil {
		return nil, fmt.Errorf("wiki: list wikis: %w", err)
	}
	return payload.Wikis, nil
}

// WikiPage fetches a single wiki page.
func (s *HTTPService) WikiPage(ctx context.Context, id string) (*WikiPage, error) {
	var page WikiPage
	if err := s.client.GetJSON(ctx, "/api/wikis/wikipages/"+url.PathEscape(id), nil, &page); err != nil {
		return nil, fmt.Errorf("wiki: fetch page %s: %w", id, err)
	}
	return &page, nil
}

// NavigationMenus lists every wiki as a menu entry. A nil
// service lists nothing.
func (s *HTTPService) NavigationMenus(ctx context.Context) ([]navigation.Menu, error) {
	if s == nil {
		return nil, nil
	}
	wikis, err := s.Wikis(ctx)
	if err != nil {
		return nil, err
	}
	return menusFor(wikis), nil
}
