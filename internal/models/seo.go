package models

import (
	"encoding/json"
	"time"
)

const (
	OGTypeWebsite = "website"
	OGTypeArticle = "article"
	OGTypeProduct = "product"

	TwitterCardSummary           = "summary"
	TwitterCardSummaryLargeImage = "summary_large_image"
	TwitterCardApp               = "app"
	TwitterCardPlayer            = "player"

	DefaultRobotsMeta = "index, follow"
)

// SEOTag is one page's meta tags, keyed by the frontend page id.
type SEOTag struct {
	ID       int64  `db:"id"        json:"id"`
	PageID   string `db:"page_id"   json:"page_id"   validate:"required,max=100"`
	PagePath string `db:"page_path" json:"page_path" validate:"required,max=255"`
	PageName string `db:"page_name" json:"page_name" validate:"required,max=150"`

	// Basic SEO
	PageTitle       string `db:"page_title"       json:"page_title"       validate:"required,max=70"`
	MetaDescription string `db:"meta_description" json:"meta_description" validate:"required,max=160"`
	MetaKeywords    string `db:"meta_keywords"    json:"meta_keywords"    validate:"omitempty,max=255"`
	CanonicalURL    string `db:"canonical_url"    json:"canonical_url"    validate:"omitempty,url,max=500"`
	RobotsMeta      string `db:"robots_meta"      json:"robots_meta"      validate:"omitempty,max=100"`

	// Open Graph
	OGTitle       string `db:"og_title"       json:"og_title"       validate:"omitempty,max=95"`
	OGDescription string `db:"og_description" json:"og_description" validate:"omitempty,max=200"`
	OGType        string `db:"og_type"        json:"og_type"        validate:"omitempty,oneof=website article product"`
	OGURL         string `db:"og_url"         json:"og_url"         validate:"omitempty,url,max=500"`
	OGImageURL    string `db:"og_image_url"   json:"og_image_url"   validate:"omitempty,url,max=500"`
	OGImageAlt    string `db:"og_image_alt"   json:"og_image_alt"   validate:"omitempty,max=255"`

	// Twitter card
	TwitterCard        string `db:"twitter_card"        json:"twitter_card"        validate:"omitempty,oneof=summary summary_large_image app player"`
	TwitterTitle       string `db:"twitter_title"       json:"twitter_title"       validate:"omitempty,max=70"`
	TwitterDescription string `db:"twitter_description" json:"twitter_description" validate:"omitempty,max=200"`
	TwitterImageURL    string `db:"twitter_image_url"   json:"twitter_image_url"   validate:"omitempty,url,max=500"`

	// JSON-LD structured data, stored opaquely.
	Schema json.RawMessage `db:"schema" json:"schema,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy string    `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy string    `db:"updated_by" json:"updated_by,omitempty"`
}

// SiteSEO is the singleton site-wide record for verification tags and
// injected scripts. Exactly one row (id=1) ever exists.
type SiteSEO struct {
	ID                     int64     `db:"id"                       json:"id"`
	GoogleSiteVerification string    `db:"google_site_verification" json:"google_site_verification"`
	HeaderScript           string    `db:"header_script"            json:"header_script"`
	FooterScript           string    `db:"footer_script"            json:"footer_script"`
	CreatedAt              time.Time `db:"created_at"               json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"               json:"updated_at"`
	CreatedBy              string    `db:"created_by"               json:"created_by,omitempty"`
	UpdatedBy              string    `db:"updated_by"               json:"updated_by,omitempty"`
}

// SiteSEOInput is the write payload for the singleton. Pointers allow PATCH
// to update a subset of fields.
type SiteSEOInput struct {
	GoogleSiteVerification *string `json:"google_site_verification"`
	HeaderScript           *string `json:"header_script"`
	FooterScript           *string `json:"footer_script"`
}

// FullSEO is the combined read: every page's tags plus the singleton.
type FullSEO struct {
	SEOTags     []*SEOTag `json:"seo_tags"`
	AdvancedSEO *SiteSEO  `json:"advanced_seo"`
}

// SEOListParams collects the list filters for SEO tags.
type SEOListParams struct {
	OGType      string
	TwitterCard string
	Search      string
	Ordering    string
}
