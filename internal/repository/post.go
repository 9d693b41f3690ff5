package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"evcms/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostRepo interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, params models.PostListParams) ([]*models.Post, int, error)
	Update(ctx context.Context, p *models.Post) (*models.Post, error)
	Delete(ctx context.Context, slug string) error
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string, publishedAt *time.Time) error
	IncrementViews(ctx context.Context, id int64) error
}

type postRepo struct{ db *pgxpool.Pool }

func NewPostRepo(db *pgxpool.Pool) PostRepo { return &postRepo{db: db} }

const postColumns = `
	id, title, slug, meta_description, author, category, tags, content,
	featured_image_url, featured_image_alt, featured_image_caption,
	status, is_featured, reading_time, views_count,
	published_at, created_at, updated_at
`

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.MetaDescription, &p.Author, &p.Category, &p.Tags, &p.Content,
		&p.FeaturedImageURL, &p.FeaturedImageAlt, &p.FeaturedImageCaption,
		&p.Status, &p.IsFeatured, &p.ReadingTime, &p.ViewsCount,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	q := `
		INSERT INTO blog_posts (
			title, slug, meta_description, author, category, tags, content,
			featured_image_url, featured_image_alt, featured_image_caption,
			status, is_featured, reading_time, published_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7::jsonb,$8,$9,$10,$11,$12,$13,$14)
		RETURNING ` + postColumns

	out, err := scanPost(r.db.QueryRow(ctx, q,
		p.Title, p.Slug, p.MetaDescription, p.Author, p.Category, p.Tags, p.Content,
		p.FeaturedImageURL, p.FeaturedImageAlt, p.FeaturedImageCaption,
		p.Status, p.IsFeatured, p.ReadingTime, p.PublishedAt,
	))
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	q := `SELECT ` + postColumns + ` FROM blog_posts WHERE slug = $1`
	p, err := scanPost(r.db.QueryRow(ctx, q, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// orderable columns whitelisted for the ?ordering= query parameter.
var postOrderings = map[string]string{
	"published_at": "published_at",
	"created_at":   "created_at",
	"views_count":  "views_count",
	"title":        "title",
}

func (r *postRepo) List(ctx context.Context, params models.PostListParams) ([]*models.Post, int, error) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if params.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", i))
		args = append(args, params.Status)
		i++
	}
	if params.Category != "" {
		where = append(where, fmt.Sprintf("category = $%d", i))
		args = append(args, params.Category)
		i++
	}
	if params.Author != "" {
		where = append(where, fmt.Sprintf("author = $%d", i))
		args = append(args, params.Author)
		i++
	}
	if params.IsFeatured != nil {
		where = append(where, fmt.Sprintf("is_featured = $%d", i))
		args = append(args, *params.IsFeatured)
		i++
	}
	if params.Search != "" {
		where = append(where, fmt.Sprintf(
			"(title ILIKE $%d OR meta_description ILIKE $%d OR tags ILIKE $%d OR author ILIKE $%d)",
			i, i, i, i,
		))
		args = append(args, "%"+params.Search+"%")
		i++
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM blog_posts"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	ordering := params.Ordering
	if ordering == "" {
		ordering = "-published_at"
	}
	dir := "ASC"
	if strings.HasPrefix(ordering, "-") {
		ordering = strings.TrimPrefix(ordering, "-")
		dir = "DESC"
	}
	col, ok := postOrderings[ordering]
	if !ok {
		col, dir = "published_at", "DESC"
	}
	orderBy := fmt.Sprintf(" ORDER BY %s %s NULLS LAST", col, dir)

	q := "SELECT " + postColumns + " FROM blog_posts" + cond + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func (r *postRepo) Update(ctx context.Context, p *models.Post) (*models.Post, error) {
	q := `
		UPDATE blog_posts
		SET title=$1,
		    slug=$2,
		    meta_description=$3,
		    author=$4,
		    category=$5,
		    tags=$6,
		    content=$7::jsonb,
		    featured_image_url=$8,
		    featured_image_alt=$9,
		    featured_image_caption=$10,
		    status=$11,
		    is_featured=$12,
		    reading_time=$13,
		    published_at=$14,
		    updated_at=NOW()
		WHERE id=$15
		RETURNING ` + postColumns

	out, err := scanPost(r.db.QueryRow(ctx, q,
		p.Title, p.Slug, p.MetaDescription, p.Author, p.Category, p.Tags, p.Content,
		p.FeaturedImageURL, p.FeaturedImageAlt, p.FeaturedImageCaption,
		p.Status, p.IsFeatured, p.ReadingTime, p.PublishedAt,
		p.ID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

func (r *postRepo) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, q, slug, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postRepo) UpdateStatus(ctx context.Context, id int64, status string, publishedAt *time.Time) error {
	const q = `UPDATE blog_posts SET status=$2, published_at=$3, updated_at=NOW() WHERE id=$1`
	tag, err := r.db.Exec(ctx, q, id, status, publishedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews is a narrow counter bump: it must not touch slug,
// reading_time or updated_at.
func (r *postRepo) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE blog_posts SET views_count = views_count + 1 WHERE id = $1`, id)
	return err
}
