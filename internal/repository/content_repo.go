package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/homemadechefs/chefcms/internal/database"
	"github.com/homemadechefs/chefcms/internal/models"
)

const contentColumns = `id, kind, slug, language, title, excerpt, body, hero_image,
	meta_title, meta_description, category, tags, author_name,
	is_published, published_at, source_id, created_at, updated_at`

// contentRepo is the concrete implementation of ContentRepository
type contentRepo struct {
	db *database.DB
}

// NewContentRepo creates a new content repository
func NewContentRepo(db *database.DB) ContentRepository {
	return &contentRepo{db: db}
}

// Create inserts a new content item and populates its ID
func (r *contentRepo) Create(ctx context.Context, item *models.ContentItem) error {
	tagsJSON, _ := json.Marshal(item.Tags)
	if item.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		INSERT INTO content_items
			(kind, slug, language, title, excerpt, body, hero_image,
			 meta_title, meta_description, category, tags, author_name,
			 is_published, published_at, source_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		item.Kind, item.Slug, item.Language, item.Title, item.Excerpt, item.Body,
		item.HeroImage, item.MetaTitle, item.MetaDescription, item.Category,
		tagsJSON, item.AuthorName, item.IsPublished, item.PublishedAt, item.SourceID,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert content item: %w", err)
	}
	return nil
}

// Update replaces all mutable columns of an existing item
func (r *contentRepo) Update(ctx context.Context, item *models.ContentItem) error {
	tagsJSON, _ := json.Marshal(item.Tags)
	if item.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		UPDATE content_items SET
			kind = $2, slug = $3, language = $4, title = $5, excerpt = $6,
			body = $7, hero_image = $8, meta_title = $9, meta_description = $10,
			category = $11, tags = $12, author_name = $13, is_published = $14,
			published_at = $15, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		item.ID, item.Kind, item.Slug, item.Language, item.Title, item.Excerpt,
		item.Body, item.HeroImage, item.MetaTitle, item.MetaDescription,
		item.Category, tagsJSON, item.AuthorName, item.IsPublished, item.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("update content item: %w", err)
	}
	return requireRow(res)
}

// UpdateTranslatedFields overwrites only the translated text columns of an
// existing translation row. Nil fields are left unchanged.
func (r *contentRepo) UpdateTranslatedFields(ctx context.Context, id int64, fields *models.TranslatedFields) error {
	query := `
		UPDATE content_items SET
			title = COALESCE($2, title),
			excerpt = COALESCE($3, excerpt),
			body = COALESCE($4, body),
			meta_title = COALESCE($5, meta_title),
			meta_description = COALESCE($6, meta_description),
			updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		id, fields.Title, fields.Excerpt, fields.Body, fields.MetaTitle, fields.MetaDescription,
	)
	if err != nil {
		return fmt.Errorf("update translated fields: %w", err)
	}
	return requireRow(res)
}

// Delete removes an item. Translations of a deleted canonical item are
// intentionally left in place.
func (r *contentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM content_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content item: %w", err)
	}
	return requireRow(res)
}

// GetByID retrieves a content item by ID
func (r *contentRepo) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM content_items WHERE id = $1`, id)
	return scanContentItem(row)
}

// GetBySlug retrieves a published item by slug and language
func (r *contentRepo) GetBySlug(ctx context.Context, slug string, lang models.Language) (*models.ContentItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM content_items WHERE slug = $1 AND language = $2`,
		slug, lang)
	return scanContentItem(row)
}

// ListCanonical returns original-language items ordered by id for
// deterministic batch processing.
func (r *contentRepo) ListCanonical(ctx context.Context, publishedOnly bool, limit int) ([]*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + `
		FROM content_items
		WHERE source_id IS NULL AND language = $1`
	args := []interface{}{models.CanonicalLanguage}

	if publishedOnly {
		query += ` AND is_published = TRUE`
	}
	query += ` ORDER BY id`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	return r.queryItems(ctx, query, args...)
}

// FindTranslation returns the translation row for (sourceID, lang)
func (r *contentRepo) FindTranslation(ctx context.Context, sourceID int64, lang models.Language) (*models.ContentItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM content_items WHERE source_id = $1 AND language = $2`,
		sourceID, lang)
	return scanContentItem(row)
}

// LatestPublished returns up to n published items in lang, newest first
func (r *contentRepo) LatestPublished(ctx context.Context, lang models.Language, n int) ([]*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + `
		FROM content_items
		WHERE language = $1 AND is_published = TRUE AND source_id IS NULL
		ORDER BY published_at DESC NULLS LAST
		LIMIT $2`
	return r.queryItems(ctx, query, lang, n)
}

// ListPublished returns a page of published items in lang, newest first
func (r *contentRepo) ListPublished(ctx context.Context, lang models.Language, limit, offset int) ([]*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + `
		FROM content_items
		WHERE language = $1 AND is_published = TRUE
		ORDER BY published_at DESC NULLS LAST
		LIMIT $2 OFFSET $3`
	return r.queryItems(ctx, query, lang, limit, offset)
}

func (r *contentRepo) queryItems(ctx context.Context, query string, args ...interface{}) ([]*models.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query content items: %w", err)
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanContentItem(s scanner) (*models.ContentItem, error) {
	var (
		item        models.ContentItem
		heroImage   sql.NullString
		metaTitle   sql.NullString
		metaDesc    sql.NullString
		tagsJSON    []byte
		publishedAt sql.NullTime
		sourceID    sql.NullInt64
	)

	err := s.Scan(
		&item.ID, &item.Kind, &item.Slug, &item.Language, &item.Title,
		&item.Excerpt, &item.Body, &heroImage, &metaTitle, &metaDesc,
		&item.Category, &tagsJSON, &item.AuthorName, &item.IsPublished,
		&publishedAt, &sourceID, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan content item: %w", err)
	}

	if heroImage.Valid {
		item.HeroImage = &heroImage.String
	}
	if metaTitle.Valid {
		item.MetaTitle = &metaTitle.String
	}
	if metaDesc.Valid {
		item.MetaDescription = &metaDesc.String
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		item.PublishedAt = &t
	}
	if sourceID.Valid {
		id := sourceID.Int64
		item.SourceID = &id
	}
	if len(tagsJSON) > 0 {
		_ = json.Unmarshal(tagsJSON, &item.Tags)
	}
	return &item, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
