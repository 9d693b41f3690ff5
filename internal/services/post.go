package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"evcms/internal/content"
	"evcms/internal/logger"
	"evcms/internal/models"
	"evcms/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PostService interface {
	Create(ctx context.Context, in models.PostInput) (*models.Post, error)
	List(ctx context.Context, params models.PostListParams) ([]*models.PostListItem, int, error)
	GetBySlug(ctx context.Context, slugStr string, includeDrafts bool) (*models.Post, error)
	Update(ctx context.Context, slugStr string, in models.PostInput, partial bool) (*models.Post, error)
	Delete(ctx context.Context, slugStr string) error
	Publish(ctx context.Context, slugStr string) (*models.Post, error)
	Unpublish(ctx context.Context, slugStr string) (*models.Post, error)
}

type postService struct {
	repo     repository.PostRepo
	validate *validator.Validate
}

func NewPostService(repo repository.PostRepo) PostService {
	return &postService{repo: repo, validate: newValidator()}
}

func (s *postService) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	log := logger.WithCtx(ctx)

	if err := asValidationError(s.validate.Struct(in)); err != nil {
		log.Warn("post create rejected by validation", zap.Error(err))
		return nil, err
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, NewValidationError("title", "this field is required")
	}

	p := &models.Post{
		Title:    strings.TrimSpace(*in.Title),
		Author:   "Admin",
		Category: "news",
		Status:   models.StatusDraft,
	}
	applyInput(p, in)

	autoSlug := p.Slug == ""
	if err := s.applySaveRules(ctx, p); err != nil {
		return nil, err
	}

	log.Info("creating blog post",
		zap.String("title", p.Title),
		zap.String("slug", p.Slug),
		zap.String("status", p.Status),
	)

	created, err := s.repo.Create(ctx, p)
	if errors.Is(err, repository.ErrUniqueViolation) && autoSlug {
		// Lost a slug race with a concurrent create; resolve again once.
		log.Warn("slug collision on commit, retrying", zap.String("slug", p.Slug))
		p.Slug = ""
		if err = s.applySaveRules(ctx, p); err != nil {
			return nil, err
		}
		created, err = s.repo.Create(ctx, p)
	}
	if errors.Is(err, repository.ErrUniqueViolation) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		log.Error("failed to create blog post", zap.Error(err))
		return nil, err
	}

	log.Info("blog post created", zap.Int64("id", created.ID), zap.String("slug", created.Slug))
	return created, nil
}

func (s *postService) List(ctx context.Context, params models.PostListParams) ([]*models.PostListItem, int, error) {
	log := logger.WithCtx(ctx)

	// Drafts stay hidden unless explicitly requested. A caller-supplied
	// status filter still applies on top, so asking for drafts without
	// include_drafts matches nothing rather than falling back to published.
	if !params.IncludeDrafts {
		if params.Status == "" {
			params.Status = models.StatusPublished
		} else if params.Status != models.StatusPublished {
			return []*models.PostListItem{}, 0, nil
		}
	}
	if params.Limit <= 0 {
		params.Limit = defaultPageSize
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	posts, total, err := s.repo.List(ctx, params)
	if err != nil {
		log.Error("failed to list blog posts", zap.Error(err))
		return nil, 0, err
	}

	items := make([]*models.PostListItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, p.ListItem())
	}

	log.Debug("blog posts listed", zap.Int("count", len(items)), zap.Int("total", total))
	return items, total, nil
}

// GetBySlug retrieves a post and bumps its view counter. The increment is an
// isolated counter update: slug and reading_time are never touched by it.
func (s *postService) GetBySlug(ctx context.Context, slugStr string, includeDrafts bool) (*models.Post, error) {
	log := logger.WithCtx(ctx)

	p, err := s.repo.GetBySlug(ctx, slugStr)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error("failed to get blog post", zap.String("slug", slugStr), zap.Error(err))
		return nil, err
	}
	if p.Status != models.StatusPublished && !includeDrafts {
		return nil, ErrNotFound
	}

	if err := s.repo.IncrementViews(ctx, p.ID); err != nil {
		log.Error("failed to increment views", zap.Int64("id", p.ID), zap.Error(err))
		return nil, err
	}
	p.ViewsCount++

	return p, nil
}

func (s *postService) Update(ctx context.Context, slugStr string, in models.PostInput, partial bool) (*models.Post, error) {
	log := logger.WithCtx(ctx)

	if err := asValidationError(s.validate.Struct(in)); err != nil {
		log.Warn("post update rejected by validation", zap.Error(err))
		return nil, err
	}
	if !partial && (in.Title == nil || strings.TrimSpace(*in.Title) == "") {
		return nil, NewValidationError("title", "this field is required")
	}

	p, err := s.repo.GetBySlug(ctx, slugStr)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	applyInput(p, in)
	if err := s.applySaveRules(ctx, p); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, p)
	if errors.Is(err, repository.ErrUniqueViolation) {
		return nil, ErrSlugTaken
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error("failed to update blog post", zap.Int64("id", p.ID), zap.Error(err))
		return nil, err
	}

	log.Info("blog post updated", zap.Int64("id", updated.ID), zap.String("slug", updated.Slug))
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, slugStr string) error {
	log := logger.WithCtx(ctx)

	err := s.repo.Delete(ctx, slugStr)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		log.Error("failed to delete blog post", zap.String("slug", slugStr), zap.Error(err))
		return err
	}

	log.Info("blog post deleted", zap.String("slug", slugStr))
	return nil
}

// Publish moves a draft to published. The published_at timestamp is set only
// on the first publish; re-publishing is rejected as a conflict.
func (s *postService) Publish(ctx context.Context, slugStr string) (*models.Post, error) {
	log := logger.WithCtx(ctx)

	p, err := s.repo.GetBySlug(ctx, slugStr)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.Status == models.StatusPublished {
		return nil, ErrAlreadyPublished
	}

	p.Status = models.StatusPublished
	if p.PublishedAt == nil {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, p.ID, p.Status, p.PublishedAt); err != nil {
		log.Error("failed to publish blog post", zap.Int64("id", p.ID), zap.Error(err))
		return nil, err
	}

	log.Info("blog post published", zap.Int64("id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

// Unpublish moves a published post back to draft. The original published_at
// is retained so re-publishing does not move the post in date orderings.
func (s *postService) Unpublish(ctx context.Context, slugStr string) (*models.Post, error) {
	log := logger.WithCtx(ctx)

	p, err := s.repo.GetBySlug(ctx, slugStr)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.Status == models.StatusDraft {
		return nil, ErrAlreadyDraft
	}

	p.Status = models.StatusDraft
	if err := s.repo.UpdateStatus(ctx, p.ID, p.Status, p.PublishedAt); err != nil {
		log.Error("failed to unpublish blog post", zap.Int64("id", p.ID), zap.Error(err))
		return nil, err
	}

	log.Info("blog post unpublished", zap.Int64("id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

// applyInput copies the provided fields onto the post; nil pointers mean
// "leave unchanged" so PATCH can update a subset.
func applyInput(p *models.Post, in models.PostInput) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil {
		p.Slug = strings.TrimSpace(*in.Slug)
	}
	if in.MetaDescription != nil {
		p.MetaDescription = *in.MetaDescription
	}
	if in.Author != nil {
		p.Author = *in.Author
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	if in.Content != nil {
		p.Content = in.Content
	}
	if in.FeaturedImageURL != nil {
		p.FeaturedImageURL = *in.FeaturedImageURL
	}
	if in.FeaturedImageAlt != nil {
		p.FeaturedImageAlt = *in.FeaturedImageAlt
	}
	if in.FeaturedImageCaption != nil {
		p.FeaturedImageCaption = *in.FeaturedImageCaption
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
}

// applySaveRules is the save pipeline every post write goes through:
// slug assignment with collision suffixing, publish timestamp stamping,
// and an unconditional reading-time recompute.
func (s *postService) applySaveRules(ctx context.Context, p *models.Post) error {
	if p.Slug == "" {
		base := slug.Make(p.Title)
		candidate := base
		for i := 1; ; i++ {
			exists, err := s.repo.SlugExists(ctx, candidate, p.ID)
			if err != nil {
				return err
			}
			if !exists {
				break
			}
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		p.Slug = candidate
	} else {
		exists, err := s.repo.SlugExists(ctx, p.Slug, p.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrSlugTaken
		}
	}

	if p.Status == models.StatusPublished && p.PublishedAt == nil {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}

	p.ReadingTime = content.ReadingTime(p.Content)
	return nil
}
