package handlers

import (
	"errors"
	"net/http"

	"evcms/internal/services"
	"evcms/internal/utils/helpers"
)

// writeServiceError maps service errors onto HTTP status codes. Anything
// unrecognized is a plain 500 so internal detail never leaks to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		helpers.FieldErrors(w, http.StatusBadRequest, "validation failed", ve.Fields)
	case errors.Is(err, services.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrSlugTaken):
		helpers.Error(w, http.StatusConflict, "slug already in use")
	case errors.Is(err, services.ErrPageIDTaken):
		helpers.Error(w, http.StatusConflict, "page_id already in use")
	case errors.Is(err, services.ErrAlreadyPublished):
		helpers.Error(w, http.StatusConflict, "post is already published")
	case errors.Is(err, services.ErrAlreadyDraft):
		helpers.Error(w, http.StatusConflict, "post is already a draft")
	default:
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
