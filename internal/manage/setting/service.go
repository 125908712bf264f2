package setting

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates that the settings service dependency has not been wired.
var ErrNotConfigured = errors.New("setting service not configured")

// Service exposes the site-wide settings every console page renders with.
type Service interface {
	// WebsiteSettings returns the current website settings. Implementations must
	// not cache; callers rely on a fresh read per request.
	WebsiteSettings(ctx context.Context) (*Website, error)
}

// Website captures the configurable identity of the public site.
type Website struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Keywords     string `json:"keywords"`
	XMLNS        string `json:"xmlns"`
	CustomHeader string `json:"custom_header"`
	CustomFooter string `json:"custom_footer"`
}

// DefaultWebsite returns the settings used before an administrator saves any.
func DefaultWebsite() Website {
	return Website{
		Name:        "My Website",
		Description: "Powered by iTranswarp",
		Keywords:    "",
	}
}

func defaultWebsite() *Website {
	w := DefaultWebsite()
	return &w
}
