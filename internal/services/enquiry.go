package services

import (
	"context"
	"encoding/json"
	"errors"

	"evcms/internal/logger"
	"evcms/internal/models"
	"evcms/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// EnquiryRepo is what a lead-form service needs from storage. The six
// enquiry repositories all satisfy it for their own record type.
type EnquiryRepo[T any] interface {
	Create(ctx context.Context, rec *T) (*T, error)
	List(ctx context.Context, limit, offset int) ([]*T, int, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, id int64, rec *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// EnquiryService handles one lead-form resource. All six forms share the
// same lifecycle: public create with raw payload capture, admin CRUD.
type EnquiryService[T any] struct {
	repo     EnquiryRepo[T]
	validate *validator.Validate
	resource string
}

func NewEnquiryService[T any](repo EnquiryRepo[T], resource string) *EnquiryService[T] {
	return &EnquiryService[T]{repo: repo, validate: newValidator(), resource: resource}
}

// Create validates the submission and stores it together with the verbatim
// request body, so the audit trail survives later schema changes.
func (s *EnquiryService[T]) Create(ctx context.Context, rec *T, raw json.RawMessage) (*T, error) {
	log := logger.WithCtx(ctx)

	if err := asValidationError(s.validate.Struct(rec)); err != nil {
		log.Warn("submission rejected by validation",
			zap.String("resource", s.resource), zap.Error(err))
		return nil, err
	}

	if setter, ok := any(rec).(models.RawPayloadSetter); ok {
		setter.SetRawPayload(raw)
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		log.Error("failed to store submission",
			zap.String("resource", s.resource), zap.Error(err))
		return nil, err
	}

	log.Info("submission stored", zap.String("resource", s.resource))
	return created, nil
}

func (s *EnquiryService[T]) List(ctx context.Context, limit, offset int) ([]*T, int, error) {
	log := logger.WithCtx(ctx)

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	recs, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		log.Error("failed to list submissions",
			zap.String("resource", s.resource), zap.Error(err))
		return nil, 0, err
	}
	return recs, total, nil
}

func (s *EnquiryService[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.WithCtx(ctx).Error("failed to get submission",
			zap.String("resource", s.resource), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return rec, nil
}

func (s *EnquiryService[T]) Update(ctx context.Context, id int64, rec *T) (*T, error) {
	log := logger.WithCtx(ctx)

	if err := asValidationError(s.validate.Struct(rec)); err != nil {
		log.Warn("submission update rejected by validation",
			zap.String("resource", s.resource), zap.Error(err))
		return nil, err
	}

	// The stored raw payload is an immutable audit record; updates go
	// through the typed columns only, so the existing payload is kept.
	existing, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if setter, ok := any(rec).(models.RawPayloadSetter); ok {
		if meta, ok2 := any(existing).(interface{ GetRawPayload() json.RawMessage }); ok2 {
			setter.SetRawPayload(meta.GetRawPayload())
		}
	}

	updated, err := s.repo.Update(ctx, id, rec)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error("failed to update submission",
			zap.String("resource", s.resource), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("submission updated", zap.String("resource", s.resource), zap.Int64("id", id))
	return updated, nil
}

func (s *EnquiryService[T]) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		log.Error("failed to delete submission",
			zap.String("resource", s.resource), zap.Int64("id", id), zap.Error(err))
		return err
	}

	log.Info("submission deleted", zap.String("resource", s.resource), zap.Int64("id", id))
	return nil
}
