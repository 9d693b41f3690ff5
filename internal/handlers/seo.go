package handlers

import (
	"encoding/json"
	"net/http"

	"evcms/internal/models"
	"evcms/internal/services"
	"evcms/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type SEOHandler struct {
	service services.SEOService
}

func NewSEOHandler(service services.SEOService) *SEOHandler {
	return &SEOHandler{service: service}
}

// List godoc
// @Summary      List SEO tags
// @Tags         seo
// @Produce      json
// @Param        og_type       query  string  false  "Filter by Open Graph type"
// @Param        twitter_card  query  string  false  "Filter by Twitter card type"
// @Param        search        query  string  false  "Search across page fields"
// @Param        ordering      query  string  false  "Ordering field, prefix with - for descending"
// @Success      200  {object}  helpers.Response
// @Router       /seo [get]
func (h *SEOHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := models.SEOListParams{
		OGType:      q.Get("og_type"),
		TwitterCard: q.Get("twitter_card"),
		Search:      q.Get("search"),
		Ordering:    q.Get("ordering"),
	}

	tags, err := h.service.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, tags)
}

// Retrieve godoc
// @Summary      Get SEO tags for a page
// @Tags         seo
// @Produce      json
// @Param        page_id  path  string  true  "Page identifier"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Router       /seo/{page_id} [get]
func (h *SEOHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	pageID := mux.Vars(r)["page_id"]

	tag, err := h.service.GetByPageID(r.Context(), pageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, tag)
}

// Create godoc
// @Summary      Create SEO tags for a page
// @Tags         seo
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        input  body  models.SEOTag  true  "SEO tag payload"
// @Success      201  {object}  helpers.Response
// @Failure      400  {object}  helpers.Response
// @Failure      409  {object}  helpers.Response
// @Router       /seo [post]
func (h *SEOHandler) Create(w http.ResponseWriter, r *http.Request) {
	var tag models.SEOTag
	if err := json.NewDecoder(r.Body).Decode(&tag); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := h.service.Create(r.Context(), &tag)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, created)
}

// Update godoc
// @Summary      Update SEO tags for a page
// @Tags         seo
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        page_id  path  string         true  "Page identifier"
// @Param        input    body  models.SEOTag  true  "SEO tag payload"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Router       /seo/{page_id} [put]
func (h *SEOHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// PartialUpdate godoc
// @Summary      Partially update SEO tags for a page
// @Tags         seo
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        page_id  path  string         true  "Page identifier"
// @Param        input    body  models.SEOTag  true  "Fields to update"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Router       /seo/{page_id} [patch]
func (h *SEOHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *SEOHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	pageID := mux.Vars(r)["page_id"]

	var tag models.SEOTag
	if err := json.NewDecoder(r.Body).Decode(&tag); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.service.Update(r.Context(), pageID, &tag, partial)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary      Delete SEO tags for a page
// @Tags         seo
// @Security     BearerAuth
// @Param        page_id  path  string  true  "Page identifier"
// @Success      204
// @Failure      404  {object}  helpers.Response
// @Router       /seo/{page_id} [delete]
func (h *SEOHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pageID := mux.Vars(r)["page_id"]

	if err := h.service.Delete(r.Context(), pageID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FullSEO godoc
// @Summary      All SEO data in one call
// @Description  Returns every page's tags plus the site-wide record.
// @Tags         seo
// @Produce      json
// @Success      200  {object}  helpers.Response
// @Router       /seo/full-seo [get]
func (h *SEOHandler) FullSEO(w http.ResponseWriter, r *http.Request) {
	full, err := h.service.FullSEO(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, full)
}

// GetSite godoc
// @Summary      Get site-wide SEO settings
// @Tags         seo
// @Produce      json
// @Success      200  {object}  helpers.Response
// @Router       /seo/advanced [get]
func (h *SEOHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	site, err := h.service.GetSite(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, site)
}

// UpdateSite godoc
// @Summary      Update site-wide SEO settings
// @Tags         seo
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        input  body  models.SiteSEOInput  true  "Fields to update"
// @Success      200  {object}  helpers.Response
// @Router       /seo/advanced [patch]
func (h *SEOHandler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	var in models.SiteSEOInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	site, err := h.service.UpdateSite(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, site)
}
