// Package generator produces a sitemap from the pages held in a store.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/romangod6/sitemapper/internal/content"
	"github.com/romangod6/sitemapper/internal/models"
	"github.com/romangod6/sitemapper/internal/sitemap"
	"github.com/romangod6/sitemapper/internal/storage"
	"github.com/romangod6/sitemapper/internal/utils"
)

// PageLoader is the part of storage.Store a generation needs.
type PageLoader interface {
	LoadPages(ctx context.Context) ([]*models.Page, error)
}

var _ PageLoader = (storage.Store)(nil)

type Generator struct {
	pages  PageLoader
	site   models.Site
	filter sitemap.Filter
	logger *utils.Logger
}

func New(pages PageLoader, site models.Site, filter sitemap.Filter, logger *utils.Logger) *Generator {
	return &Generator{
		pages:  pages,
		site:   site,
		filter: filter,
		logger: logger,
	}
}

// Site returns the site configuration sitemaps are generated against.
func (g *Generator) Site() models.Site {
	return g.site
}

// Generate loads the current content tree and builds its sitemap. Nothing is
// cached between calls.
func (g *Generator) Generate(ctx context.Context) (*sitemap.Map, error) {
	id := uuid.New()
	start := time.Now()

	pages, err := g.pages.LoadPages(ctx)
	if err != nil {
		g.logger.LogError("generation %s: failed to load pages: %v", id, err)
		return nil, fmt.Errorf("failed to load pages: %w", err)
	}
	g.logger.LogDebug("generation %s: loaded %d pages", id, len(pages))

	tree, err := content.NewTree(g.site, pages)
	if err != nil {
		g.logger.LogError("generation %s: %v", id, err)
		return nil, err
	}

	m, err := sitemap.Build(tree, g.site, sitemap.WithFilter(g.filter))
	if err != nil {
		g.logger.LogError("generation %s: %v", id, err)
		return nil, err
	}

	g.logger.LogInfo("generation %s: %d entries from %d pages in %s", id, m.Len(), tree.Len(), time.Since(start))
	return m, nil
}
