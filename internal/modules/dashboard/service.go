// Package dashboard serves the console shell: the sidebar menu and the
// overview page with collection counts.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/modules/crud"
)

// Stat is the size of one collection shown on the overview page.
type Stat struct {
	Slug  string
	Title string
	Href  string
	Count int
}

// StatSource names a resource counted on the overview page.
type StatSource struct {
	Slug  string
	Title string
}

// DefaultStats are the overview cards in display order.
var DefaultStats = []StatSource{
	{Slug: "products", Title: "Total Products"},
	{Slug: "categories", Title: "Categories"},
	{Slug: "admins", Title: "Admins"},
	{Slug: "colors", Title: "Colors"},
}

type Service interface {
	Stats(ctx context.Context) ([]Stat, error)
}

type service struct {
	registry *crud.Registry
	clients  apiclient.Registry
	sources  []StatSource
	logger   *slog.Logger
}

func NewService(registry *crud.Registry, clients apiclient.Registry, sources []StatSource, logger *slog.Logger) (Service, error) {
	for _, src := range sources {
		if _, ok := registry.Get(src.Slug); !ok {
			return nil, fmt.Errorf("stat %q: unknown resource", src.Slug)
		}
	}
	return &service{registry: registry, clients: clients, sources: sources, logger: logger}, nil
}

// Stats fetches every counted collection concurrently. Counts are all or
// nothing: when one fetch fails every count stays at zero and the error
// is returned alongside the zeroed stats.
func (s *service) Stats(ctx context.Context) ([]Stat, error) {
	stats := make([]Stat, len(s.sources))
	counts := make([]int, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		res, _ := s.registry.Get(src.Slug)
		stats[i] = Stat{Slug: src.Slug, Title: src.Title, Href: res.Path()}
		g.Go(func() error {
			records, err := s.clients.For(res.API).List(gctx, res.Endpoint, nil)
			if err != nil {
				return fmt.Errorf("count %s: %w", src.Slug, err)
			}
			counts[i] = len(records)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}
	for i := range stats {
		stats[i].Count = counts[i]
	}
	s.logger.DebugContext(ctx, "dashboard stats loaded", slog.Int("collections", len(stats)))
	return stats, nil
}
