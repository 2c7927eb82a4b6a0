// Package content is the in-memory content tree the sitemap builder walks.
package content

import (
	"sort"
	"strings"

	"github.com/romangod6/sitemapper/internal/models"
	"github.com/romangod6/sitemapper/internal/sitemap"
)

var _ sitemap.Accessor = (*Tree)(nil)

// Tree indexes a flat page list by ID and parent. It is read-only once built.
type Tree struct {
	site     models.Site
	pages    map[string]*models.Page
	children map[string][]*models.Page
	roots    []*models.Page
}

// NewTree builds a tree from pages. Media must already be attached to its
// page. The site's error page is flagged as such.
func NewTree(site models.Site, pages []*models.Page) (*Tree, error) {
	t := &Tree{
		site:     site,
		pages:    make(map[string]*models.Page, len(pages)),
		children: make(map[string][]*models.Page),
	}

	for _, p := range pages {
		if _, ok := t.pages[p.ID]; ok {
			return nil, &sitemap.StructuralError{PageID: p.ID, Message: "duplicate page id"}
		}
		if p.ID == site.ErrorPageID && site.ErrorPageID != "" {
			p.IsError = true
		}
		t.pages[p.ID] = p
	}

	for _, p := range pages {
		if p.IsRoot() {
			if p.Published() || p.ID == site.HomePageID {
				t.roots = append(t.roots, p)
			}
			continue
		}
		if _, ok := t.pages[p.ParentID]; !ok {
			return nil, &sitemap.StructuralError{PageID: p.ID, Message: "unknown parent " + p.ParentID}
		}
		if p.ParentID == p.ID {
			return nil, &sitemap.StructuralError{PageID: p.ID, Message: "page is its own parent"}
		}
		t.children[p.ParentID] = append(t.children[p.ParentID], p)
	}

	sortPages(t.roots)
	for _, list := range t.children {
		sortPages(list)
	}
	return t, nil
}

func sortPages(pages []*models.Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Num != pages[j].Num {
			return pages[i].Num < pages[j].Num
		}
		return pages[i].ID < pages[j].ID
	})
}

// Page looks up a page by ID.
func (t *Tree) Page(id string) (*models.Page, bool) {
	p, ok := t.pages[id]
	return p, ok
}

// Len returns the number of pages, drafts included.
func (t *Tree) Len() int {
	return len(t.pages)
}

func (t *Tree) Roots() []*models.Page {
	return t.roots
}

func (t *Tree) Parent(p *models.Page) *models.Page {
	if p.IsRoot() {
		return nil
	}
	return t.pages[p.ParentID]
}

func (t *Tree) PublishedChildren(p *models.Page) []*models.Page {
	var out []*models.Page
	for _, c := range t.children[p.ID] {
		if c.Published() {
			out = append(out, c)
		}
	}
	return out
}

// ResolveURL builds base URL, locale prefix and page ID. The home page
// resolves to the site (or locale) root.
func (t *Tree) ResolveURL(p *models.Page, locale string) string {
	url := strings.TrimRight(t.site.BaseURL, "/")
	if locale != "" {
		url += "/" + locale
	}
	if p.ID == t.site.HomePageID {
		return url + "/"
	}
	return url + "/" + p.ID
}
