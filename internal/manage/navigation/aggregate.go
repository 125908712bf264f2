// Package navigation aggregates the navigation menu entries contributed by the
// console's domain modules.
package navigation

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Menu is a link descriptor contributed by a domain module. Index is assigned
// by the Aggregator and reflects the entry's position in the combined list.
type Menu struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Index string `json:"index"`
}

// MenuProvider is implemented by domain modules that contribute navigation entries.
type MenuProvider interface {
	NavigationMenus(ctx context.Context) ([]Menu, error)
}

// MenuProviderFunc adapts a function to MenuProvider.
type MenuProviderFunc func(ctx context.Context) ([]Menu, error)

// NavigationMenus calls f.
func (f MenuProviderFunc) NavigationMenus(ctx context.Context) ([]Menu, error) {
	return f(ctx)
}

type noMenus struct{}

func (noMenus) NavigationMenus(context.Context) ([]Menu, error) {
	return nil, nil
}

// Aggregator combines menu entries from an ordered list of modules.
type Aggregator struct {
	providers []MenuProvider
}

// NewAggregator wraps modules in display order. Modules that do not implement
// MenuProvider, and untyped nils, contribute no entries. A typed nil pointer
// is kept as is, so a provider's NavigationMenus must tolerate a nil receiver.
func NewAggregator(modules ...any) *Aggregator {
	providers := make([]MenuProvider, 0, len(modules))
	for _, module := range modules {
		provider, ok := module.(MenuProvider)
		if !ok || provider == nil {
			provider = noMenus{}
		}
		providers = append(providers, provider)
	}
	return &Aggregator{providers: providers}
}

// Len returns the number of registered modules.
func (a *Aggregator) Len() int {
	if a == nil {
		return 0
	}
	return len(a.providers)
}

// Aggregate queries every module concurrently and concatenates the results in
// module order. Any module failure aborts the aggregation.
func (a *Aggregator) Aggregate(ctx context.Context) ([]Menu, error) {
	if a == nil || len(a.providers) == 0 {
		return []Menu{}, nil
	}

	results := make([][]Menu, len(a.providers))
	g, gctx := errgroup.WithContext(ctx)
	for i, provider := range a.providers {
		g.Go(func() error {
			menus, err := provider.NavigationMenus(gctx)
			if err != nil {
				return fmt.Errorf("navigation: module %d: %w", i, err)
			}
			results[i] = menus
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, menus := range results {
		total += len(menus)
	}
	combined := make([]Menu, 0, total)
	for _, menus := range results {
		combined = append(combined, menus...)
	}
	for i := range combined {
		combined[i].Index = strconv.Itoa(i)
	}
	return combined, nil
}
