// Package sitemap decides which pages of a content tree appear in the
// sitemap, under which URLs and with which images.
package sitemap

import "github.com/romangod6/sitemapper/internal/models"

// Accessor is the read-only view of the content tree the builder walks.
type Accessor interface {
	// Roots returns the published root-level pages, home page included.
	Roots() []*models.Page
	// Parent returns the page's parent or nil at the root.
	Parent(p *models.Page) *models.Page
	// PublishedChildren returns the non-draft children in display order.
	PublishedChildren(p *models.Page) []*models.Page
	// ResolveURL returns the absolute page URL for locale; the empty
	// locale is the bare URL of a single-locale site.
	ResolveURL(p *models.Page, locale string) string
}

// Filter is a site-wide predicate; pages it rejects are not listed and
// contribute no images.
type Filter func(p *models.Page) bool
