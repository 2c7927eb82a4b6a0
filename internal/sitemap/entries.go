package sitemap

import "github.com/romangod6/sitemapper/internal/models"

// Map is the generated sitemap keyed by URL. It remembers insertion order so
// that rendering is deterministic.
type Map struct {
	entries map[string]*models.Entry
	order   []string
}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{entries: make(map[string]*models.Entry)}
}

// Add inserts e. A URL that is already present is a StructuralError.
func (m *Map) Add(e *models.Entry) error {
	if existing, ok := m.entries[e.URL]; ok {
		return &StructuralError{
			PageID:  e.PageID,
			URL:     e.URL,
			Message: "url already listed by page " + existing.PageID,
		}
	}
	m.entries[e.URL] = e
	m.order = append(m.order, e.URL)
	return nil
}

// Merge adds every entry of other, in its order. Key sets must be disjoint.
func (m *Map) Merge(other *Map) error {
	for _, url := range other.order {
		if err := m.Add(other.entries[url]); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the entry listed under url.
func (m *Map) Get(url string) (*models.Entry, bool) {
	e, ok := m.entries[url]
	return e, ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.order)
}

// URLs returns the entry URLs in insertion order.
func (m *Map) URLs() []string {
	return append([]string(nil), m.order...)
}

// Entries returns the entries in insertion order.
func (m *Map) Entries() []*models.Entry {
	out := make([]*models.Entry, 0, len(m.order))
	for _, url := range m.order {
		out = append(out, m.entries[url])
	}
	return out
}
