package setting

import (
	"context"
	"errors"
	"fmt"

	"github.com/blademainer/itranswarp/internal/manage/apiclient"
	"github.com/blademainer/itranswarp/internal/manage/apierror"
)

const websiteEndpoint = "/api/settings/website"

// HTTPService reads settings from the REST API.
type HTTPService struct {
	client *apiclient.Client
}

// NewHTTPService constructs a Service backed by client.
func NewHTTPService(client *apiclient.Client) *HTTPService {
	if client == nil {
		panic("setting: api client is required")
	}
	return &HTTPService{client: client}
}

// WebsiteSettings fetches the website settings group. A 404 yields DefaultWebsite.
func (s *HTTPService) WebsiteSettings(ctx context.Context) (*Website, error) {
	var w Website
	if err := s.client.GetJSON(ctx, websiteEndpoint, nil, &w); err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			return defaultWebsite(), nil
		}
		return nil, fmt.Errorf("setting: fetch website: %w", err)
	}
	return &w, nil
}
