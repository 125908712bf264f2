package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/blademainer/itranswarp/internal/manage/apierror"
)

// HTTPClient matches the subset of http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client issues JSON requests against the itranswarp REST API.
type Client struct {
	base   *url.URL
	client HTTPClient
	token  string
}

// New constructs a Client rooted at baseURL. The token, when non-empty, is sent as a Bearer credential.
func New(baseURL, token string, client HTTPClient) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("apiclient: base URL %q must be absolute", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		base:   parsed,
		client: client,
		token:  strings.TrimSpace(token),
	}, nil
}

// GetJSON fetches endpoint and decodes the JSON response into out.
// A 404 response is reported as apierror.ErrNotFound.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(endpoint, query), nil)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("apiclient: GET %s: %w", endpoint, apierror.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return errorFromResponse(endpoint, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) resolve(endpoint string, query url.Values) string {
	ref := &url.URL{Path: "/" + strings.TrimPrefix(endpoint, "/")}
	if len(query) > 0 {
		ref.RawQuery = query.Encode()
	}
	resolved := c.base.ResolveReference(ref)
	if prefix := strings.TrimRight(c.base.Path, "/"); prefix != "" {
		resolved.Path = prefix + ref.Path
	}
	return resolved.String()
}

func errorFromResponse(endpoint string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	// The API reports failures as {"error": "...", "data": "...", "message": "..."}.
	type errorPayload struct {
		Error   string `json:"error"`
		Data    string `json:"data"`
		Message string `json:"message"`
	}
	var payload errorPayload
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return fmt.Errorf("apiclient: GET %s: backend error (%d %s): %s", endpoint, resp.StatusCode, strings.TrimSpace(payload.Error), payload.Message)
		}
		return fmt.Errorf("apiclient: GET %s: backend error (%d): %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("apiclient: GET %s: backend error (%d): %s", endpoint, resp.StatusCode, http.StatusText(resp.StatusCode))
}
