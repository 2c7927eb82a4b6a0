package sitemap

import (
	"time"

	"github.com/romangod6/sitemapper/internal/models"
)

// Builder turns a content tree into sitemap entries.
type Builder struct {
	tree     Accessor
	site     models.Site
	resolver *Resolver
}

// Option configures a Builder.
type Option func(*options)

type options struct {
	filter Filter
}

// WithFilter installs the site-wide custom filter.
func WithFilter(f Filter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// NewBuilder validates the site's locale configuration and returns a
// builder for tree.
func NewBuilder(tree Accessor, site models.Site, opts ...Option) (*Builder, error) {
	if err := ValidateSite(site); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{
		tree:     tree,
		site:     site,
		resolver: NewResolver(tree, site, o.filter),
	}, nil
}

// Build generates the sitemap of the whole tree.
func Build(tree Accessor, site models.Site, opts ...Option) (*Map, error) {
	b, err := NewBuilder(tree, site, opts...)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// Build generates entries for every root page and merges them.
func (b *Builder) Build() (*Map, error) {
	out := NewMap()
	visited := make(map[string]struct{})
	for _, root := range b.tree.Roots() {
		sub, err := b.buildTree(root, visited)
		if err != nil {
			return nil, err
		}
		if err := out.Merge(sub); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// BuildTree generates entries for p and its subtree only.
func (b *Builder) BuildTree(p *models.Page) (*Map, error) {
	return b.buildTree(p, make(map[string]struct{}))
}

func (b *Builder) buildTree(p *models.Page, visited map[string]struct{}) (*Map, error) {
	if _, ok := visited[p.ID]; ok {
		return nil, &StructuralError{PageID: p.ID, Message: "page reached twice while building"}
	}
	visited[p.ID] = struct{}{}

	out := NewMap()
	if err := b.addEntries(out, p); err != nil {
		return nil, err
	}

	for _, child := range b.tree.PublishedChildren(p) {
		// images-mode children only ever surface through CollectImages.
		if ResolveMode(child).Kind == ModeImages {
			continue
		}
		sub, err := b.buildTree(child, visited)
		if err != nil {
			return nil, err
		}
		if err := out.Merge(sub); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (b *Builder) addEntries(out *Map, p *models.Page) error {
	mode := ResolveMode(p)
	switch mode.Kind {
	case ModeHide, ModeImages:
		return nil
	case ModeLocale:
		// A code the site doesn't know lists the page like show.
		if _, ok := b.site.Locale(mode.Locale); ok {
			return b.addEntry(out, p, mode.Locale, nil, nil)
		}
	}

	if !b.site.MultiLocale() {
		return b.addEntry(out, p, "", nil, nil)
	}

	alternates, order := b.alternates(p)
	for _, l := range b.site.Locales {
		if err := b.addEntry(out, p, l.Code, alternates, order); err != nil {
			return err
		}
	}
	return nil
}

// addEntry lists p under locale if it is visible there.
func (b *Builder) addEntry(out *Map, p *models.Page, locale string, alternates map[string]models.Alternate, order []string) error {
	visible, err := b.resolver.IsVisible(p, locale)
	if err != nil || !visible {
		return err
	}
	images, err := b.resolver.CollectImages(p, locale)
	if err != nil {
		return err
	}
	return out.Add(&models.Entry{
		URL:            b.tree.ResolveURL(p, locale),
		PageID:         p.ID,
		Locale:         locale,
		LastModified:   lastModified(p),
		Alternates:     alternates,
		AlternateOrder: order,
		Images:         images,
	})
}

// alternates lists every configured locale plus x-default, which points at
// the default locale's URL.
func (b *Builder) alternates(p *models.Page) (map[string]models.Alternate, []string) {
	alternates := make(map[string]models.Alternate, len(b.site.Locales)+1)
	order := make([]string, 0, len(b.site.Locales)+1)
	for _, l := range b.site.Locales {
		alternates[l.Code] = models.Alternate{Tag: l.Tag, URL: b.tree.ResolveURL(p, l.Code)}
		order = append(order, l.Code)
	}
	alternates[models.XDefault] = models.Alternate{
		Tag: models.XDefault,
		URL: b.tree.ResolveURL(p, b.site.DefaultLocale),
	}
	order = append(order, models.XDefault)
	return alternates, order
}

func lastModified(p *models.Page) string {
	if p.Modified.IsZero() {
		return ""
	}
	return p.Modified.Format(time.RFC3339)
}
