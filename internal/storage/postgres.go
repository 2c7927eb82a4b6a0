package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/romangod6/sitemapper/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS pages (
            id VARCHAR(1024) PRIMARY KEY,
            parent_id VARCHAR(1024),
            title VARCHAR(255),
            status VARCHAR(32) NOT NULL DEFAULT 'listed',
            num INTEGER NOT NULL DEFAULT 0,
            sitemap_mode VARCHAR(64),
            sitemap JSONB,
            modified TIMESTAMPTZ,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS media (
            id UUID PRIMARY KEY,
            page_id VARCHAR(1024) NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
            filename VARCHAR(255),
            url VARCHAR(2048) NOT NULL,
            sitemap JSONB,
            sort INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
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

func (s *PostgresStore) UpsertPage(ctx context.Context, page *models.Page) error {
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
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (id) DO UPDATE SET
            parent_id = EXCLUDED.parent_id,
            title = EXCLUDED.title,
            status = EXCLUDED.status,
            num = EXCLUDED.num,
            sitemap_mode = EXCLUDED.sitemap_mode,
            sitemap = EXCLUDED.sitemap,
            modified = EXCLUDED.modified,
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM media WHERE page_id = $1`, page.ID); err != nil {
		return fmt.Errorf("failed to clear media of %s: %w", page.ID, err)
	}

	for _, a := range page.Media {
		assetToggle, err := encodeToggle(a.Sitemap)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO media (id, page_id, filename, url, sitemap, sort, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.ID, page.ID, a.Filename, a.URL, assetToggle, a.Sort, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert media %s: %w", a.URL, err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) GetPage(ctx context.Context, id string) (*models.Page, error) {
	query := `
        SELECT id, parent_id, title, status, num, sitemap_mode, sitemap, modified, created_at, updated_at
        FROM pages
        WHERE id = $1
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
        FROM media WHERE page_id = $1 ORDER BY sort`, id)
	if err != nil {
		return nil, err
	}
	page.Media = media

	return page, nil
}

func (s *PostgresStore) ListPages(ctx context.Context, limit, offset int) ([]*models.Page, error) {
	query := `
        SELECT id, parent_id, title, status, num, sitemap_mode, sitemap, modified, created_at, updated_at
        FROM pages
        ORDER BY id
        LIMIT $1 OFFSET $2
    `

	return s.queryPages(ctx, query, limit, offset)
}

func (s *PostgresStore) LoadPages(ctx context.Context) ([]*models.Page, error) {
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

func (s *PostgresStore) DeletePage(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) PrunePages(ctx context.Context, keep []string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM pages WHERE NOT (id = ANY($1))`,
		pq.Array(keep),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *PostgresStore) queryPages(ctx context.Context, query string, args ...interface{}) ([]*models.Page, error) {
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

func (s *PostgresStore) queryMedia(ctx context.Context, query string, args ...interface{}) ([]*models.MediaAsset, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var media []*models.MediaAsset
	for rows.Next() {
		var a models.MediaAsset
		var id uuid.UUID
		var filename, toggle sql.NullString

		if err := rows.Scan(&id, &a.PageID, &filename, &a.URL, &toggle, &a.Sort, &a.CreatedAt); err != nil {
			return nil, err
		}

		a.ID = id
		a.Filename = filename.String
		if a.Sitemap, err = decodeToggle(toggle.String); err != nil {
			return nil, fmt.Errorf("media %s: %w", id, err)
		}
		media = append(media, &a)
	}

	return media, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
