package sitemap_test

import (
	"testing"
	"time"

	"github.com/romangod6/sitemapper/internal/content"
	"github.com/romangod6/sitemapper/internal/models"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://example.com"

var modified = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

func singleLocaleSite() models.Site {
	return models.Site{Title: "Example", BaseURL: baseURL, HomePageID: "home", ErrorPageID: "error"}
}

func multiLocaleSite() models.Site {
	site := singleLocaleSite()
	site.DefaultLocale = "en"
	site.Locales = []models.Locale{
		{Code: "en", Tag: "en-GB", Name: "English"},
		{Code: "fr", Tag: "fr-FR", Name: "Français"},
	}
	return site
}

type pageOption func(*models.Page)

func withMode(mode string) pageOption {
	return func(p *models.Page) { p.SitemapMode = mode }
}

func withSitemap(t models.Toggle) pageOption {
	return func(p *models.Page) { p.Sitemap = t }
}

func withStatus(status string) pageOption {
	return func(p *models.Page) { p.Status = status }
}

func withNum(n int) pageOption {
	return func(p *models.Page) { p.Num = n }
}

func withImages(assets ...*models.MediaAsset) pageOption {
	return func(p *models.Page) {
		for _, a := range assets {
			a.PageID = p.ID
			p.Media = append(p.Media, a)
		}
	}
}

func image(url string) *models.MediaAsset {
	return models.NewMediaAsset("", url)
}

func hiddenImage(url string) *models.MediaAsset {
	a := models.NewMediaAsset("", url)
	a.Sitemap = models.Bool(false)
	return a
}

func page(id, parent string, opts ...pageOption) *models.Page {
	p := models.NewPage(id)
	p.ParentID = parent
	p.Modified = modified
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func newTree(t *testing.T, site models.Site, pages ...*models.Page) *content.Tree {
	t.Helper()
	tree, err := content.NewTree(site, pages)
	require.NoError(t, err)
	return tree
}

func mustPage(t *testing.T, tree *content.Tree, id string) *models.Page {
	t.Helper()
	p, ok := tree.Page(id)
	require.True(t, ok, "page %s", id)
	return p
}

// fakeTree lets tests build shapes content.Tree refuses to: cycles, shared
// children and colliding URLs.
type fakeTree struct {
	roots    []*models.Page
	parents  map[string]*models.Page
	children map[string][]*models.Page
	urls     map[string]string
}

func newFakeTree() *fakeTree {
	return &fakeTree{
		parents:  make(map[string]*models.Page),
		children: make(map[string][]*models.Page),
		urls:     make(map[string]string),
	}
}

func (f *fakeTree) link(parent, child *models.Page) {
	f.parents[child.ID] = parent
	f.children[parent.ID] = append(f.children[parent.ID], child)
}

func (f *fakeTree) Roots() []*models.Page {
	return f.roots
}

func (f *fakeTree) Parent(p *models.Page) *models.Page {
	return f.parents[p.ID]
}

func (f *fakeTree) PublishedChildren(p *models.Page) []*models.Page {
	return f.children[p.ID]
}

func (f *fakeTree) ResolveURL(p *models.Page, locale string) string {
	if url, ok := f.urls[p.ID]; ok {
		return url
	}
	if locale != "" {
		return baseURL + "/" + locale + "/" + p.ID
	}
	return baseURL + "/" + p.ID
}

func boolPtr(v bool) *bool {
	return &v
}
