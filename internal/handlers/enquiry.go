package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"evcms/internal/services"
	"evcms/internal/utils/helpers"

	"github.com/gorilla/mux"
)

// maxSubmissionBody caps public form bodies; anything real is far smaller.
const maxSubmissionBody = 1 << 20

// EnquiryHandler serves one lead-form resource. The six forms differ only
// in their record type, so a single generic handler covers them all.
type EnquiryHandler[T any] struct {
	service *services.EnquiryService[T]
}

func NewEnquiryHandler[T any](service *services.EnquiryService[T]) *EnquiryHandler[T] {
	return &EnquiryHandler[T]{service: service}
}

type enquiryListResponse[T any] struct {
	Count   int  `json:"count"`
	Results []*T `json:"results"`
}

// Create handles the public submission endpoint. The body is read whole so
// the verbatim payload can be stored alongside the parsed record.
func (h *EnquiryHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSubmissionBody))
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "could not read request body")
		return
	}

	rec := new(T)
	if err := json.Unmarshal(body, rec); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := h.service.Create(r.Context(), rec, body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, created)
}

func (h *EnquiryHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := parseInt(q.Get("limit"), 0)
	offset := parseInt(q.Get("offset"), 0)

	recs, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, enquiryListResponse[T]{Count: total, Results: recs})
}

func (h *EnquiryHandler[T]) Retrieve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	rec, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, rec)
}

func (h *EnquiryHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	rec := new(T)
	if err := json.NewDecoder(r.Body).Decode(rec); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, rec)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, updated)
}

func (h *EnquiryHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
