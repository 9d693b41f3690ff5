package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"evcms/internal/logger"
	"evcms/internal/models"
	"evcms/internal/repository"
	"evcms/internal/reqctx"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type SEOService interface {
	Create(ctx context.Context, t *models.SEOTag) (*models.SEOTag, error)
	GetByPageID(ctx context.Context, pageID string) (*models.SEOTag, error)
	List(ctx context.Context, params models.SEOListParams) ([]*models.SEOTag, error)
	Update(ctx context.Context, pageID string, t *models.SEOTag, partial bool) (*models.SEOTag, error)
	Delete(ctx context.Context, pageID string) error
	FullSEO(ctx context.Context) (*models.FullSEO, error)
	GetSite(ctx context.Context) (*models.SiteSEO, error)
	UpdateSite(ctx context.Context, in models.SiteSEOInput) (*models.SiteSEO, error)
}

type seoService struct {
	repo     repository.SEORepo
	validate *validator.Validate
	siteURL  string
	tz       *time.Location
}

func NewSEOService(repo repository.SEORepo, siteURL string) SEOService {
	// SEO timestamps are rendered in the site owner's local time.
	tz, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		tz = time.FixedZone("IST", 5*3600+1800)
	}
	return &seoService{
		repo:     repo,
		validate: newValidator(),
		siteURL:  strings.TrimRight(siteURL, "/"),
		tz:       tz,
	}
}

func (s *seoService) Create(ctx context.Context, t *models.SEOTag) (*models.SEOTag, error) {
	log := logger.WithCtx(ctx)

	if err := asValidationError(s.validate.Struct(t)); err != nil {
		log.Warn("seo tag rejected by validation", zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.PageIDExists(ctx, t.PageID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPageIDTaken
	}

	s.applyDefaults(t)
	if sub, ok := reqctx.GetSubject(ctx); ok && sub != "" {
		t.CreatedBy = sub
		t.UpdatedBy = sub
	}

	created, err := s.repo.Create(ctx, t)
	if errors.Is(err, repository.ErrUniqueViolation) {
		return nil, ErrPageIDTaken
	}
	if err != nil {
		log.Error("failed to create seo tag", zap.String("page_id", t.PageID), zap.Error(err))
		return nil, err
	}

	s.localize(created)
	log.Info("seo tag created", zap.String("page_id", created.PageID))
	return created, nil
}

func (s *seoService) GetByPageID(ctx context.Context, pageID string) (*models.SEOTag, error) {
	t, err := s.repo.GetByPageID(ctx, pageID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.WithCtx(ctx).Error("failed to get seo tag",
			zap.String("page_id", pageID), zap.Error(err))
		return nil, err
	}
	s.localize(t)
	return t, nil
}

func (s *seoService) List(ctx context.Context, params models.SEOListParams) ([]*models.SEOTag, error) {
	tags, err := s.repo.List(ctx, params)
	if err != nil {
		logger.WithCtx(ctx).Error("failed to list seo tags", zap.Error(err))
		return nil, err
	}
	for _, t := range tags {
		s.localize(t)
	}
	return tags, nil
}

func (s *seoService) Update(ctx context.Context, pageID string, t *models.SEOTag, partial bool) (*models.SEOTag, error) {
	log := logger.WithCtx(ctx)

	existing, err := s.repo.GetByPageID(ctx, pageID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if partial {
		mergeBlankFields(t, existing)
	}
	if t.PageID == "" {
		t.PageID = existing.PageID
	}
	if err := asValidationError(s.validate.Struct(t)); err != nil {
		log.Warn("seo tag update rejected by validation", zap.Error(err))
		return nil, err
	}

	if t.PageID != existing.PageID {
		exists, err := s.repo.PageIDExists(ctx, t.PageID, existing.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrPageIDTaken
		}
	}

	t.ID = existing.ID
	t.CreatedBy = existing.CreatedBy
	s.applyDefaults(t)
	if sub, ok := reqctx.GetSubject(ctx); ok && sub != "" {
		t.UpdatedBy = sub
	}

	updated, err := s.repo.Update(ctx, t)
	if errors.Is(err, repository.ErrUniqueViolation) {
		return nil, ErrPageIDTaken
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error("failed to update seo tag", zap.String("page_id", pageID), zap.Error(err))
		return nil, err
	}

	s.localize(updated)
	log.Info("seo tag updated", zap.String("page_id", updated.PageID))
	return updated, nil
}

func (s *seoService) Delete(ctx context.Context, pageID string) error {
	log := logger.WithCtx(ctx)

	err := s.repo.Delete(ctx, pageID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		log.Error("failed to delete seo tag", zap.String("page_id", pageID), zap.Error(err))
		return err
	}

	log.Info("seo tag deleted", zap.String("page_id", pageID))
	return nil
}

// FullSEO is the single call a frontend makes at boot: all page tags plus
// the site-wide record.
func (s *seoService) FullSEO(ctx context.Context) (*models.FullSEO, error) {
	tags, err := s.List(ctx, models.SEOListParams{})
	if err != nil {
		return nil, err
	}
	site, err := s.GetSite(ctx)
	if err != nil {
		return nil, err
	}
	return &models.FullSEO{SEOTags: tags, AdvancedSEO: site}, nil
}

func (s *seoService) GetSite(ctx context.Context) (*models.SiteSEO, error) {
	site, err := s.repo.LoadSite(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("failed to load site seo", zap.Error(err))
		return nil, err
	}
	s.localizeSite(site)
	return site, nil
}

func (s *seoService) UpdateSite(ctx context.Context, in models.SiteSEOInput) (*models.SiteSEO, error) {
	log := logger.WithCtx(ctx)

	site, err := s.repo.LoadSite(ctx)
	if err != nil {
		return nil, err
	}

	if in.GoogleSiteVerification != nil {
		site.GoogleSiteVerification = *in.GoogleSiteVerification
	}
	if in.HeaderScript != nil {
		site.HeaderScript = *in.HeaderScript
	}
	if in.FooterScript != nil {
		site.FooterScript = *in.FooterScript
	}
	if sub, ok := reqctx.GetSubject(ctx); ok && sub != "" {
		site.UpdatedBy = sub
		if site.CreatedBy == "" {
			site.CreatedBy = sub
		}
	}

	updated, err := s.repo.UpdateSite(ctx, site)
	if err != nil {
		log.Error("failed to update site seo", zap.Error(err))
		return nil, err
	}

	s.localizeSite(updated)
	log.Info("site seo updated")
	return updated, nil
}

// mergeBlankFields backfills omitted fields from the stored record so PATCH
// can update a subset. Blanking a field through PATCH is not supported; use
// PUT for full replacement.
func mergeBlankFields(t, existing *models.SEOTag) {
	if t.PagePath == "" {
		t.PagePath = existing.PagePath
	}
	if t.PageName == "" {
		t.PageName = existing.PageName
	}
	if t.PageTitle == "" {
		t.PageTitle = existing.PageTitle
	}
	if t.MetaDescription == "" {
		t.MetaDescription = existing.MetaDescription
	}
	if t.MetaKeywords == "" {
		t.MetaKeywords = existing.MetaKeywords
	}
	if t.CanonicalURL == "" {
		t.CanonicalURL = existing.CanonicalURL
	}
	if t.RobotsMeta == "" {
		t.RobotsMeta = existing.RobotsMeta
	}
	if t.OGTitle == "" {
		t.OGTitle = existing.OGTitle
	}
	if t.OGDescription == "" {
		t.OGDescription = existing.OGDescription
	}
	if t.OGType == "" {
		t.OGType = existing.OGType
	}
	if t.OGURL == "" {
		t.OGURL = existing.OGURL
	}
	if t.OGImageURL == "" {
		t.OGImageURL = existing.OGImageURL
	}
	if t.OGImageAlt == "" {
		t.OGImageAlt = existing.OGImageAlt
	}
	if t.TwitterCard == "" {
		t.TwitterCard = existing.TwitterCard
	}
	if t.TwitterTitle == "" {
		t.TwitterTitle = existing.TwitterTitle
	}
	if t.TwitterDescription == "" {
		t.TwitterDescription = existing.TwitterDescription
	}
	if t.TwitterImageURL == "" {
		t.TwitterImageURL = existing.TwitterImageURL
	}
	if len(t.Schema) == 0 {
		t.Schema = existing.Schema
	}
}

// applyDefaults fills blank social fields from the basic SEO fields:
// Open Graph falls back to the basic tags and Twitter falls back to
// Open Graph, so a record with only the basics still renders everywhere.
func (s *seoService) applyDefaults(t *models.SEOTag) {
	if t.RobotsMeta == "" {
		t.RobotsMeta = models.DefaultRobotsMeta
	}

	if t.OGTitle == "" {
		t.OGTitle = t.PageTitle
	}
	if t.OGDescription == "" {
		t.OGDescription = t.MetaDescription
	}
	if t.OGType == "" {
		t.OGType = models.OGTypeWebsite
	}
	if t.OGURL == "" && s.siteURL != "" {
		t.OGURL = s.siteURL + "/" + strings.TrimLeft(t.PagePath, "/")
	}

	if t.TwitterCard == "" {
		t.TwitterCard = models.TwitterCardSummaryLargeImage
	}
	if t.TwitterTitle == "" {
		t.TwitterTitle = t.OGTitle
	}
	if t.TwitterDescription == "" {
		t.TwitterDescription = t.OGDescription
	}
	if t.TwitterImageURL == "" {
		t.TwitterImageURL = t.OGImageURL
	}
}

func (s *seoService) localize(t *models.SEOTag) {
	t.CreatedAt = t.CreatedAt.In(s.tz)
	t.UpdatedAt = t.UpdatedAt.In(s.tz)
}

func (s *seoService) localizeSite(site *models.SiteSEO) {
	site.CreatedAt = site.CreatedAt.In(s.tz)
	site.UpdatedAt = site.UpdatedAt.In(s.tz)
}
