package sitemap

import "github.com/romangod6/sitemapper/internal/models"

// Resolver answers visibility questions about pages and assets of one tree.
// It holds no mutable state and may be shared by concurrent generations.
type Resolver struct {
	tree   Accessor
	site   models.Site
	filter Filter
}

// NewResolver creates a resolver. filter may be nil.
func NewResolver(tree Accessor, site models.Site, filter Filter) *Resolver {
	return &Resolver{tree: tree, site: site, filter: filter}
}

// IsVisible reports whether p may appear in the sitemap for locale. The
// explicit "sitemap" field is consulted before the custom filter: an explicit
// false wins without calling the filter, and an explicit true does not
// bypass it.
func (r *Resolver) IsVisible(p *models.Page, locale string) (bool, error) {
	if p.IsError {
		return false, nil
	}
	if ResolveMode(p).Kind == ModeHide {
		return false, nil
	}
	hidden, err := r.ancestorHidden(p)
	if err != nil {
		return false, err
	}
	if hidden {
		return false, nil
	}

	value, present := r.toggle(p.Sitemap, locale)
	if present && !value {
		return false, nil
	}
	if r.filter != nil && !r.filter(p) {
		return false, nil
	}
	if present {
		return value, nil
	}
	return true, nil
}

// IsImageVisible reports whether an asset may be listed for locale. Assets
// know nothing of modes or filters; only their own field counts.
func (r *Resolver) IsImageVisible(a *models.MediaAsset, locale string) bool {
	if value, present := r.toggle(a.Sitemap, locale); present {
		return value
	}
	return true
}

func (r *Resolver) ancestorHidden(p *models.Page) (bool, error) {
	seen := map[string]struct{}{p.ID: {}}
	for parent := r.tree.Parent(p); parent != nil; parent = r.tree.Parent(parent) {
		if _, ok := seen[parent.ID]; ok {
			return false, &StructuralError{PageID: p.ID, Message: "cycle in ancestor chain at " + parent.ID}
		}
		seen[parent.ID] = struct{}{}
		if ResolveMode(parent).Kind == ModeHide {
			return true, nil
		}
	}
	return false, nil
}

// toggle resolves a content field for locale. Single-locale sites only read
// the unlocalized value. Multi-locale sites read the locale's value, then the
// default locale's, then the unlocalized value as the untranslated default.
// A missing value is never an error.
func (r *Resolver) toggle(t models.Toggle, locale string) (value, present bool) {
	if !r.site.MultiLocale() {
		if t.Value == nil {
			return false, false
		}
		return *t.Value, true
	}
	if locale == "" {
		locale = r.site.DefaultLocale
	}
	if v, ok := t.Locales[locale]; ok {
		return v, true
	}
	if v, ok := t.Locales[r.site.DefaultLocale]; ok {
		return v, true
	}
	if t.Value != nil {
		return *t.Value, true
	}
	return false, false
}
