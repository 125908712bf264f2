package wiki

import (
	"context"

	"github.com/blademainer/itranswarp/internal/manage/navigation"
)

// Wiki is a collection of hierarchical pages.
type Wiki struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
}

// WikiPage is a single page inside a wiki tree.
type WikiPage struct {
	ID           string `json:"id"`
	WikiID       string `json:"wiki_id"`
	ParentID     string `json:"parent_id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// Service exposes the wiki data the console needs.
type Service interface {
	Wikis(ctx context.Context) ([]Wiki, error)
	// WikiPage returns the page identified by id or an apierror.ErrNotFound error.
	WikiPage(ctx context.Context, id string) (*WikiPage, error)
}

func menusFor(wikis []Wiki) []navigation.Menu {
	menus := make([]navigation.Menu, 0, len(wikis))
	for _, w := range wikis {
		menus = append(menus, navigation.Menu{
			Name: w.Name,
			URL:  "/wiki/" + w.ID,
		})
	}
	return menus
}
