package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrSlugTaken        = errors.New("a blog post with this slug already exists")
	ErrAlreadyPublished = errors.New("blog post is already published")
	ErrAlreadyDraft     = errors.New("blog post is already a draft")
	ErrPageIDTaken      = errors.New("a page with this ID already exists")
)

// ValidationError enumerates the offending fields of a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// newValidator builds the shared validator instance, reporting fields by
// their JSON names so API errors match the wire format.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// asValidationError converts validator output into our field-keyed error.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "this field is required"
		case "email":
			fields[fe.Field()] = "must be a valid email address"
		case "url":
			fields[fe.Field()] = "must be a valid URL"
		case "max":
			fields[fe.Field()] = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "min":
			fields[fe.Field()] = fmt.Sprintf("must be at least %s characters", fe.Param())
		case "gte":
			fields[fe.Field()] = fmt.Sprintf("must be greater than or equal to %s", fe.Param())
		case "oneof":
			fields[fe.Field()] = "must be one of: " + fe.Param()
		default:
			fields[fe.Field()] = "invalid value"
		}
	}
	return &ValidationError{Fields: fields}
}
