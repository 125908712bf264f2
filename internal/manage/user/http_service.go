package user

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/blademainer/itranswarp/internal/manage/apiclient"
)

const usersEndpoint = "/api/users"

// HTTPService resolves users through the REST API.
type HTTPService struct {
	client *apiclient.Client
}

// NewHTTPService constructs a Service backed by client.
func NewHTTPService(client *apiclient.Client) *HTTPService {
	if client == nil {
		panic("user: api client is required")
	}
	return &HTTPService{client: client}
}

// BindUsers fetches every referenced user in one request and binds them.
func (s *HTTPService) BindUsers(ctx context.Context, records []Bindable) error {
	ids := distinctIDs(records)
	if len(ids) == 0 {
		bindAll(records, nil)
		return nil
	}

	var payload struct {
		Users []User `json:"users"`
	}
	query := url.Values{"ids": {strings.Join(ids, ",")}}
	if err := s.client.GetJSON(ctx, usersEndpoint, query, &payload); err != nil {
		return fmt.Errorf("user: bind users: %w", err)
	}

	found := make(map[string]*User, len(payload.Users))
	for i := range payload.Users {
		u := payload.Users[i]
		found[u.ID] = &u
	}
	bindAll(records, found)
	return nil
}
