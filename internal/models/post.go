package models

import (
	"encoding/json"
	"strings"
	"time"

	"evcms/internal/content"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// CategoryChoices maps category slugs to display names (closed enum).
var CategoryChoices = map[string]string{
	"electronic-vehicles":        "Electronic Vehicles",
	"technological-advancements": "Technological Advancements",
	"events":                     "Events",
	"news":                       "News",
	"reviews":                    "Reviews",
	"services":                   "Services",
}

func ValidCategory(c string) bool {
	_, ok := CategoryChoices[c]
	return ok
}

func CategoryDisplayName(c string) string {
	if name, ok := CategoryChoices[c]; ok {
		return name
	}
	return c
}

type Post struct {
	ID                   int64           `db:"id"                     json:"id"`
	Title                string          `db:"title"                  json:"title"`
	Slug                 string          `db:"slug"                   json:"slug"`
	MetaDescription      string          `db:"meta_description"       json:"meta_description"`
	Author               string          `db:"author"                 json:"author"`
	Category             string          `db:"category"               json:"category"`
	Tags                 string          `db:"tags"                   json:"tags"`
	Content              json.RawMessage `db:"content"                json:"content,omitempty"`
	FeaturedImageURL     string          `db:"featured_image_url"     json:"featured_image_url"`
	FeaturedImageAlt     string          `db:"featured_image_alt"     json:"featured_image_alt"`
	FeaturedImageCaption string          `db:"featured_image_caption" json:"featured_image_caption"`
	Status               string          `db:"status"                 json:"status"`
	IsFeatured           bool            `db:"is_featured"            json:"is_featured"`
	ReadingTime          int             `db:"reading_time"           json:"reading_time"`
	ViewsCount           int             `db:"views_count"            json:"views_count"`
	PublishedAt          *time.Time      `db:"published_at"           json:"published_at,omitempty"`
	CreatedAt            time.Time       `db:"created_at"             json:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"             json:"updated_at"`
}

// TagList splits the comma-separated tags field into a clean slice.
func (p *Post) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}
	parts := strings.Split(p.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Excerpt returns the explicit meta description or derives one from the
// first paragraph of the content.
func (p *Post) Excerpt() string {
	return content.Excerpt(p.MetaDescription, p.Content)
}

// PostDetail is the full read projection (detail views).
type PostDetail struct {
	Post
	CategoryName string   `json:"category_name"`
	TagList      []string `json:"tag_list"`
}

func (p *Post) Detail() *PostDetail {
	return &PostDetail{
		Post:         *p,
		CategoryName: CategoryDisplayName(p.Category),
		TagList:      p.TagList(),
	}
}

// PostListItem is the lightweight list projection: no content body,
// derived excerpt instead.
type PostListItem struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	MetaDescription  string     `json:"meta_description"`
	Excerpt          string     `json:"excerpt"`
	Author           string     `json:"author"`
	Category         string     `json:"category"`
	CategoryName     string     `json:"category_name"`
	TagList          []string   `json:"tag_list"`
	FeaturedImageURL string     `json:"featured_image_url"`
	FeaturedImageAlt string     `json:"featured_image_alt"`
	IsFeatured       bool       `json:"is_featured"`
	ReadingTime      int        `json:"reading_time"`
	ViewsCount       int        `json:"views_count"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (p *Post) ListItem() *PostListItem {
	return &PostListItem{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		MetaDescription:  p.MetaDescription,
		Excerpt:          p.Excerpt(),
		Author:           p.Author,
		Category:         p.Category,
		CategoryName:     CategoryDisplayName(p.Category),
		TagList:          p.TagList(),
		FeaturedImageURL: p.FeaturedImageURL,
		FeaturedImageAlt: p.FeaturedImageAlt,
		IsFeatured:       p.IsFeatured,
		ReadingTime:      p.ReadingTime,
		ViewsCount:       p.ViewsCount,
		PublishedAt:      p.PublishedAt,
		CreatedAt:        p.CreatedAt,
	}
}

// PostInput is the create/update payload. Pointer fields distinguish
// "not provided" from zero values so PATCH can apply partial updates.
//
// swagger:model PostInput
type PostInput struct {
	Title                *string         `json:"title"                  validate:"omitempty,min=1,max=255"`
	Slug                 *string         `json:"slug"                   validate:"omitempty,max=280"`
	MetaDescription      *string         `json:"meta_description"       validate:"omitempty,max=160"`
	Author               *string         `json:"author"                 validate:"omitempty,max=150"`
	Category             *string         `json:"category"               validate:"omitempty,oneof=electronic-vehicles technological-advancements events news reviews services"`
	Tags                 *string         `json:"tags"                   validate:"omitempty,max=300"`
	Content              json.RawMessage `json:"content"`
	FeaturedImageURL     *string         `json:"featured_image_url"     validate:"omitempty,max=500"`
	FeaturedImageAlt     *string         `json:"featured_image_alt"     validate:"omitempty,max=255"`
	FeaturedImageCaption *string         `json:"featured_image_caption" validate:"omitempty,max=255"`
	Status               *string         `json:"status"                 validate:"omitempty,oneof=draft published"`
	IsFeatured           *bool           `json:"is_featured"`
}

// PostListParams collects list filters, search, ordering and pagination.
type PostListParams struct {
	Status        string
	Category      string
	Author        string
	IsFeatured    *bool
	IncludeDrafts bool
	Search        string
	Ordering      string
	Limit         int
	Offset        int
}
