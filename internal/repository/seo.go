package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"evcms/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SEORepo interface {
	Create(ctx context.Context, t *models.SEOTag) (*models.SEOTag, error)
	GetByPageID(ctx context.Context, pageID string) (*models.SEOTag, error)
	List(ctx context.Context, params models.SEOListParams) ([]*models.SEOTag, error)
	Update(ctx context.Context, t *models.SEOTag) (*models.SEOTag, error)
	Delete(ctx context.Context, pageID string) error
	PageIDExists(ctx context.Context, pageID string, excludeID int64) (bool, error)

	LoadSite(ctx context.Context) (*models.SiteSEO, error)
	UpdateSite(ctx context.Context, s *models.SiteSEO) (*models.SiteSEO, error)
}

type seoRepo struct{ db *pgxpool.Pool }

func NewSEORepo(db *pgxpool.Pool) SEORepo { return &seoRepo{db: db} }

const seoColumns = `
	id, page_id, page_path, page_name,
	page_title, meta_description, meta_keywords, canonical_url, robots_meta,
	og_title, og_description, og_type, og_url, og_image_url, og_image_alt,
	twitter_card, twitter_title, twitter_description, twitter_image_url,
	schema, created_at, updated_at, created_by, updated_by
`

func scanSEOTag(row pgx.Row) (*models.SEOTag, error) {
	var t models.SEOTag
	err := row.Scan(
		&t.ID, &t.PageID, &t.PagePath, &t.PageName,
		&t.PageTitle, &t.MetaDescription, &t.MetaKeywords, &t.CanonicalURL, &t.RobotsMeta,
		&t.OGTitle, &t.OGDescription, &t.OGType, &t.OGURL, &t.OGImageURL, &t.OGImageAlt,
		&t.TwitterCard, &t.TwitterTitle, &t.TwitterDescription, &t.TwitterImageURL,
		&t.Schema, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy, &t.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *seoRepo) Create(ctx context.Context, t *models.SEOTag) (*models.SEOTag, error) {
	q := `
		INSERT INTO seo_tags (
			page_id, page_path, page_name,
			page_title, meta_description, meta_keywords, canonical_url, robots_meta,
			og_title, og_description, og_type, og_url, og_image_url, og_image_alt,
			twitter_card, twitter_title, twitter_description, twitter_image_url,
			schema, created_by
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19::jsonb,$20)
		RETURNING ` + seoColumns

	out, err := scanSEOTag(r.db.QueryRow(ctx, q,
		t.PageID, t.PagePath, t.PageName,
		t.PageTitle, t.MetaDescription, t.MetaKeywords, t.CanonicalURL, t.RobotsMeta,
		t.OGTitle, t.OGDescription, t.OGType, t.OGURL, t.OGImageURL, t.OGImageAlt,
		t.TwitterCard, t.TwitterTitle, t.TwitterDescription, t.TwitterImageURL,
		t.Schema, t.CreatedBy,
	))
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

func (r *seoRepo) GetByPageID(ctx context.Context, pageID string) (*models.SEOTag, error) {
	q := `SELECT ` + seoColumns + ` FROM seo_tags WHERE page_id = $1`
	t, err := scanSEOTag(r.db.QueryRow(ctx, q, pageID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

var seoOrderings = map[string]string{
	"page_id":    "page_id",
	"page_name":  "page_name",
	"updated_at": "updated_at",
}

func (r *seoRepo) List(ctx context.Context, params models.SEOListParams) ([]*models.SEOTag, error) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if params.OGType != "" {
		where = append(where, fmt.Sprintf("og_type = $%d", i))
		args = append(args, params.OGType)
		i++
	}
	if params.TwitterCard != "" {
		where = append(where, fmt.Sprintf("twitter_card = $%d", i))
		args = append(args, params.TwitterCard)
		i++
	}
	if params.Search != "" {
		where = append(where, fmt.Sprintf(
			"(page_id ILIKE $%d OR page_name ILIKE $%d OR page_path ILIKE $%d OR page_title ILIKE $%d OR meta_keywords ILIKE $%d)",
			i, i, i, i, i,
		))
		args = append(args, "%"+params.Search+"%")
		i++
	}

	q := "SELECT " + seoColumns + " FROM seo_tags"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}

	ordering := params.Ordering
	if ordering == "" {
		ordering = "page_id"
	}
	dir := "ASC"
	if strings.HasPrefix(ordering, "-") {
		ordering = strings.TrimPrefix(ordering, "-")
		dir = "DESC"
	}
	col, ok := seoOrderings[ordering]
	if !ok {
		col, dir = "page_id", "ASC"
	}
	q += fmt.Sprintf(" ORDER BY %s %s", col, dir)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.SEOTag
	for rows.Next() {
		t, err := scanSEOTag(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *seoRepo) Update(ctx context.Context, t *models.SEOTag) (*models.SEOTag, error) {
	q := `
		UPDATE seo_tags
		SET page_id=$1, page_path=$2, page_name=$3,
		    page_title=$4, meta_description=$5, meta_keywords=$6, canonical_url=$7, robots_meta=$8,
		    og_title=$9, og_description=$10, og_type=$11, og_url=$12, og_image_url=$13, og_image_alt=$14,
		    twitter_card=$15, twitter_title=$16, twitter_description=$17, twitter_image_url=$18,
		    schema=$19::jsonb, updated_by=$20, updated_at=NOW()
		WHERE id=$21
		RETURNING ` + seoColumns

	out, err := scanSEOTag(r.db.QueryRow(ctx, q,
		t.PageID, t.PagePath, t.PageName,
		t.PageTitle, t.MetaDescription, t.MetaKeywords, t.CanonicalURL, t.RobotsMeta,
		t.OGTitle, t.OGDescription, t.OGType, t.OGURL, t.OGImageURL, t.OGImageAlt,
		t.TwitterCard, t.TwitterTitle, t.TwitterDescription, t.TwitterImageURL,
		t.Schema, t.UpdatedBy, t.ID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

func (r *seoRepo) Delete(ctx context.Context, pageID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM seo_tags WHERE page_id = $1`, pageID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *seoRepo) PageIDExists(ctx context.Context, pageID string, excludeID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM seo_tags WHERE page_id = $1 AND id <> $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, q, pageID, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

const siteSEOColumns = `
	id, google_site_verification, header_script, footer_script,
	created_at, updated_at, created_by, updated_by
`

func scanSiteSEO(row pgx.Row) (*models.SiteSEO, error) {
	var s models.SiteSEO
	err := row.Scan(
		&s.ID, &s.GoogleSiteVerification, &s.HeaderScript, &s.FooterScript,
		&s.CreatedAt, &s.UpdatedAt, &s.CreatedBy, &s.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSite gets or creates the singleton row (id pinned to 1).
func (r *seoRepo) LoadSite(ctx context.Context) (*models.SiteSEO, error) {
	q := `
		INSERT INTO site_seo (id) VALUES (1)
		ON CONFLICT (id) DO UPDATE SET id = site_seo.id
		RETURNING ` + siteSEOColumns
	return scanSiteSEO(r.db.QueryRow(ctx, q))
}

func (r *seoRepo) UpdateSite(ctx context.Context, s *models.SiteSEO) (*models.SiteSEO, error) {
	q := `
		UPDATE site_seo
		SET google_site_verification=$1, header_script=$2, footer_script=$3,
		    updated_by=$4, updated_at=NOW()
		WHERE id = 1
		RETURNING ` + siteSEOColumns
	out, err := scanSiteSEO(r.db.QueryRow(ctx, q,
		s.GoogleSiteVerification, s.HeaderScript, s.FooterScript, s.UpdatedBy,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return out, err
}
