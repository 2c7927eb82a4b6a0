package sitemap

import "github.com/romangod6/sitemapper/internal/models"

// CollectImages returns the image URLs listed under p's entry for locale:
// p's own visible assets, then the contribution of every visible child in
// images mode, in child order.
func (r *Resolver) CollectImages(p *models.Page, locale string) ([]string, error) {
	seen := map[string]struct{}{p.ID: {}}
	images := r.visibleMedia(p, locale)
	for _, child := range r.tree.PublishedChildren(p) {
		if ResolveMode(child).Kind != ModeImages {
			continue
		}
		sub, err := r.collectSubtree(child, locale, seen)
		if err != nil {
			return nil, err
		}
		images = append(images, sub...)
	}
	return images, nil
}

// collectSubtree gathers everything below an images-mode page. Every visible
// descendant contributes, whatever its own mode; hide descendants drop out
// through IsVisible.
func (r *Resolver) collectSubtree(p *models.Page, locale string, seen map[string]struct{}) ([]string, error) {
	if _, ok := seen[p.ID]; ok {
		return nil, &StructuralError{PageID: p.ID, Message: "page reached twice while collecting images"}
	}
	seen[p.ID] = struct{}{}

	visible, err := r.IsVisible(p, locale)
	if err != nil || !visible {
		return nil, err
	}

	images := r.visibleMedia(p, locale)
	for _, child := range r.tree.PublishedChildren(p) {
		sub, err := r.collectSubtree(child, locale, seen)
		if err != nil {
			return nil, err
		}
		images = append(images, sub...)
	}
	return images, nil
}

func (r *Resolver) visibleMedia(p *models.Page, locale string) []string {
	images := make([]string, 0, len(p.Media))
	for _, a := range p.Media {
		if r.IsImageVisible(a, locale) {
			images = append(images, a.URL)
		}
	}
	return images
}
