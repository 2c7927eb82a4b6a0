package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/romangod6/sitemapper/internal/models"
)

type Store interface {
	Initialize() error
	Close() error

	// Page operations. UpsertPage replaces the page's media.
	UpsertPage(ctx context.Context, page *models.Page) error
	GetPage(ctx context.Context, id string) (*models.Page, error)
	ListPages(ctx context.Context, limit, offset int) ([]*models.Page, error)
	DeletePage(ctx context.Context, id string) error
	// PrunePages deletes every page whose ID is not in keep.
	PrunePages(ctx context.Context, keep []string) (int64, error)

	// LoadPages returns every page with its media attached, for building
	// a content tree.
	LoadPages(ctx context.Context) ([]*models.Page, error)
}

// NewStore opens the store for driver ("sqlite3" or "postgres").
func NewStore(driver, url string) (Store, error) {
	switch driver {
	case "sqlite3", "sqlite", "":
		return NewSQLiteStore(url)
	case "postgres", "postgresql":
		return NewPostgresStore(url)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func encodeToggle(t models.Toggle) (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeToggle(s string) (models.Toggle, error) {
	var t models.Toggle
	if s == "" {
		return t, nil
	}
	err := json.Unmarshal([]byte(s), &t)
	return t, err
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// attachMedia distributes media rows to their pages, keeping sort order.
func attachMedia(pages []*models.Page, media []*models.MediaAsset) {
	byID := make(map[string]*models.Page, len(pages))
	for _, p := range pages {
		byID[p.ID] = p
	}
	for _, a := range media {
		if p, ok := byID[a.PageID]; ok {
			p.Media = append(p.Media, a)
		}
	}
}
