package models

import (
	"time"

	"github.com/google/uuid"
)

// Page statuses. Anything other than StatusDraft is published.
const (
	StatusListed   = "listed"
	StatusUnlisted = "unlisted"
	StatusDraft    = "draft"
)

// Page is a node of the content tree.
type Page struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   string `json:"status"`
	Num      int    `json:"num,omitempty"`

	// SitemapMode is the mode declared by the page blueprint: show, hide,
	// images or a locale code. Empty means show.
	SitemapMode string `json:"sitemap_mode,omitempty"`
	// Sitemap is the page's own "sitemap" content field.
	Sitemap Toggle `json:"sitemap"`
	// IsError marks the site's error page.
	IsError  bool          `json:"is_error,omitempty"`
	Modified time.Time     `json:"modified"`
	Media    []*MediaAsset `json:"media,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MediaAsset is an image file attached to a page.
type MediaAsset struct {
	ID        uuid.UUID `json:"id"`
	PageID    string    `json:"page_id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	Sitemap   Toggle    `json:"sitemap"`
	Sort      int       `json:"sort"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPage creates a published page with timestamps.
func NewPage(id string) *Page {
	now := time.Now()
	return &Page{
		ID:        id,
		Status:    StatusListed,
		Modified:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewMediaAsset creates an asset with a generated UUID.
func NewMediaAsset(pageID, url string) *MediaAsset {
	return &MediaAsset{
		ID:        uuid.New(),
		PageID:    pageID,
		URL:       url,
		CreatedAt: time.Now(),
	}
}

// Published reports whether the page is visible to the public at all.
func (p *Page) Published() bool {
	return p.Status != StatusDraft
}

// IsRoot returns true if the page has no parent
func (p *Page) IsRoot() bool {
	return p.ParentID == ""
}

// Slug is the last segment of the page ID.
func (p *Page) Slug() string {
	for i := len(p.ID) - 1; i >= 0; i-- {
		if p.ID[i] == '/' {
			return p.ID[i+1:]
		}
	}
	return p.ID
}
