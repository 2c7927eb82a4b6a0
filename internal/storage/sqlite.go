package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/romangod6/sitemapper/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS pages (
            id TEXT PRIMARY KEY,
            parent_id TEXT,
            title TEXT,
            status TEXT NOT NULL DEFAULT 'listed',
            num INTEGER NOT NULL DEFAULT 0,
            sitemap_mode TEXT,
            sitemap TEXT,
            modified DATETIME,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS media (
            id TEXT PRIMARY KEY,
            page_id TEXT NOT NULL,
            filename TEXT,
            url TEXT NOT NULL,
            sitemap TEXT,
            sort INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY(page_id) REFERENCES pages(id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_pages_parent_id ON pages(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_media_page_id ON media(page_id)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *SQLiteStore) UpsertPage(ctx context.Context, page *models.Page) error {
	toggle, err := encodeToggle(page.Sitemap)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO pages (id, parent_id, title, status, num, sitemap_mode, sitemap, modified, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            parent_id = excluded.parent_id,
            title = excluded.title,
            status = excluded.status,
            num = excluded.num,
            sitemap_mode = excluded.sitemap_mode,
            sitemap = excluded.sitemap,
            modified = excluded.modified,
            updated_at = CURRENT_TIMESTAMP
    `

	_, err = tx.ExecContext(ctx, query,
		page.ID,
		nilIfEmpty(page.ParentID),
		page.Title,
		page.Status,
		page.Num,
		nilIfEmpty(page.SitemapMode),
		toggle,
		page.Modified,
		page.CreatedAt,
		page.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert page %s: %w", page.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM media WHERE page_id = ?`, page.ID); err != nil {
		return fmt.Errorf("failed to clear media of %s: %w", page.ID, err)
	}

	for _, a := range page.Media {
		assetToggle, err := encodeToggle(a.Sitemap)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO media (id, page_id, filename, url, sitemap, sort, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ID.String(), page.ID, a.Filename, a.URL, assetToggle, a.Sort, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert media %s: %w", a.URL, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetPage(ctx context.Context, id string) (*models.Page, error) {
	query := `
        SELECT id, parent_id, title, status, num, sitemap_mode, sitemap, modified, created_at, updated_at
        FROM pages
        WHERE id = ?
    `

	page, err := scanPage(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	media, err := s.queryMedia(ctx, `
        SELECT id, page_id, filename, url, sitemap, sort, created_at
        FROM media WHERE page_id = ? ORDER BY sort`, id)
	if err != nil {
		return nil, err
	}
	page.Media = media

	return page, nil
}

func (s *SQLiteStore) ListPages(ctx context.Context, limit, offset int) ([]*models.Page, error) {
	query := `
        SELECT id, parent_id, title, status, num, sitemap_mode, sitemap, modified, created_at, updated_at
        FROM pages
        ORDER BY id
        LIMIT ? OFFSET ?
    `

	return s.queryPages(ctx, query, limit, offset)
}

func (s *SQLiteStore) LoadPages(ctx context.Context) ([]*models.Page, error) {
	pages, err := s.queryPages(ctx, `
        SELECT id, parent_id, title, status, num, sitemap_mode, sitemap, modified, created_at, updated_at
        FROM pages
        ORDER BY id`)
	if err != nil {
		return nil, err
	}

	media, err := s.queryMedia(ctx, `
        SELECT id, page_id, filename, url, sitemap, sort, created_at
        FROM media ORDER BY page_id, sort`)
	if err != nil {
		return nil, err
	}

	attachMedia(pages, media)
	return pages, nil
}

func (s *SQLiteStore) DeletePage(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM media WHERE page_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) PrunePages(ctx context.Context, keep []string) (int64, error) {
	where := "1 = 1"
	args := make([]interface{}, 0, len(keep))
	if len(keep) > 0 {
		where = "id NOT IN (?" + strings.Repeat(", ?", len(keep)-1) + ")"
		for _, id := range keep {
			args = append(args, id)
		}
	}

	mediaWhere := strings.Replace(where, "id NOT IN", "page_id NOT IN", 1)
	if _, err := s.db.ExecContext(ctx, "DELETE FROM media WHERE "+mediaWhere, args...); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE "+where, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) queryPages(ctx context.Context, query string, args ...interface{}) ([]*models.Page, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*models.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

func (s *SQLiteStore) queryMedia(ctx context.Context, query string, args ...interface{}) ([]*models.MediaAsset, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var media []*models.MediaAsset
	for rows.Next() {
		var a models.MediaAsset
		var idStr string
		var filename, toggle sql.NullString

		if err := rows.Scan(&idStr, &a.PageID, &filename, &a.URL, &toggle, &a.Sort, &a.CreatedAt); err != nil {
			return nil, err
		}

		if a.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("media %s: invalid id: %w", idStr, err)
		}
		a.Filename = filename.String
		if a.Sitemap, err = decodeToggle(toggle.String); err != nil {
			return nil, fmt.Errorf("media %s: %w", idStr, err)
		}
		media = append(media, &a)
	}

	return media, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPage(row rowScanner) (*models.Page, error) {
	var page models.Page
	var parentID, title, mode, toggle sql.NullString
	var modified sql.NullTime

	err := row.Scan(
		&page.ID,
		&parentID,
		&title,
		&page.Status,
		&page.Num,
		&mode,
		&toggle,
		&modified,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	page.ParentID = parentID.String
	page.Title = title.String
	page.SitemapMode = mode.String
	page.Modified = modified.Time
	if page.Sitemap, err = decodeToggle(toggle.String); err != nil {
		return nil, fmt.Errorf("page %s: %w", page.ID, err)
	}

	return &page, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
