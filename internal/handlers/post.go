package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"evcms/internal/models"
	"evcms/internal/services"
	"evcms/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type PostHandler struct {
	service services.PostService
}

func NewPostHandler(service services.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// postListResponse is the paginated list envelope.
type postListResponse struct {
	Count   int                    `json:"count"`
	Results []*models.PostListItem `json:"results"`
}

// List godoc
// @Summary      List blog posts
// @Description  Published posts by default; admins can pass include_drafts=true.
// @Tags         blogs
// @Produce      json
// @Param        category        query  string  false  "Filter by category slug"
// @Param        author          query  string  false  "Filter by author"
// @Param        is_featured     query  bool    false  "Filter by featured flag"
// @Param        status          query  string  false  "Filter by status (with include_drafts)"
// @Param        include_drafts  query  bool    false  "Include draft posts"
// @Param        search          query  string  false  "Search in title, tags and meta description"
// @Param        ordering        query  string  false  "Ordering field, prefix with - for descending"
// @Param        limit           query  int     false  "Page size"
// @Param        offset          query  int     false  "Page offset"
// @Success      200  {object}  helpers.Response
// @Router       /blogs [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	params := listParamsFromQuery(r)

	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, postListResponse{Count: total, Results: items})
}

// Retrieve godoc
// @Summary      Get a blog post by slug
// @Description  Each retrieval increments the post's view counter.
// @Tags         blogs
// @Produce      json
// @Param        slug  path  string  true  "Post slug"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Router       /blogs/{slug} [get]
func (h *PostHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	includeDrafts := parseBool(r.URL.Query().Get("include_drafts"))

	p, err := h.service.GetBySlug(r.Context(), slug, includeDrafts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p.Detail())
}

// Create godoc
// @Summary      Create a blog post
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        input  body  models.PostInput  true  "Post payload"
// @Success      201  {object}  helpers.Response
// @Failure      400  {object}  helpers.Response
// @Failure      409  {object}  helpers.Response
// @Router       /blogs [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, p.Detail())
}

// Update godoc
// @Summary      Replace a blog post
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slug   path  string            true  "Post slug"
// @Param        input  body  models.PostInput  true  "Post payload"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Router       /blogs/{slug} [put]
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// PartialUpdate godoc
// @Summary      Update fields of a blog post
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slug   path  string            true  "Post slug"
// @Param        input  body  models.PostInput  true  "Fields to update"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Router       /blogs/{slug} [patch]
func (h *PostHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *PostHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	slug := mux.Vars(r)["slug"]

	var in models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := h.service.Update(r.Context(), slug, in, partial)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p.Detail())
}

// Delete godoc
// @Summary      Delete a blog post
// @Tags         blogs
// @Security     BearerAuth
// @Param        slug  path  string  true  "Post slug"
// @Success      204
// @Failure      404  {object}  helpers.Response
// @Router       /blogs/{slug} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	if err := h.service.Delete(r.Context(), slug); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Featured godoc
// @Summary      List featured posts
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  helpers.Response
// @Router       /blogs/featured [get]
func (h *PostHandler) Featured(w http.ResponseWriter, r *http.Request) {
	featured := true
	params := listParamsFromQuery(r)
	params.IsFeatured = &featured
	params.IncludeDrafts = false

	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, postListResponse{Count: total, Results: items})
}

// ByCategory godoc
// @Summary      List posts in a category
// @Tags         blogs
// @Produce      json
// @Param        category  query  string  true  "Category slug"
// @Success      200  {object}  helpers.Response
// @Failure      400  {object}  helpers.Response
// @Router       /blogs/by_category [get]
func (h *PostHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		helpers.Error(w, http.StatusBadRequest, "category parameter is required")
		return
	}

	// An unknown category simply matches no posts.
	params := listParamsFromQuery(r)
	params.Category = category
	params.IncludeDrafts = false

	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, postListResponse{Count: total, Results: items})
}

// Latest godoc
// @Summary      Latest published posts
// @Tags         blogs
// @Produce      json
// @Param        limit  query  int  false  "Number of posts (default 5)"
// @Success      200  {object}  helpers.Response
// @Router       /blogs/latest [get]
func (h *PostHandler) Latest(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 5)

	params := models.PostListParams{
		Ordering: "-published_at",
		Limit:    limit,
	}

	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, postListResponse{Count: total, Results: items})
}

// Publish godoc
// @Summary      Publish a draft post
// @Tags         blogs
// @Security     BearerAuth
// @Produce      json
// @Param        slug  path  string  true  "Post slug"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Failure      409  {object}  helpers.Response
// @Router       /blogs/{slug}/publish [post]
func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	p, err := h.service.Publish(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p.Detail())
}

// Unpublish godoc
// @Summary      Move a published post back to draft
// @Tags         blogs
// @Security     BearerAuth
// @Produce      json
// @Param        slug  path  string  true  "Post slug"
// @Success      200  {object}  helpers.Response
// @Failure      404  {object}  helpers.Response
// @Failure      409  {object}  helpers.Response
// @Router       /blogs/{slug}/unpublish [post]
func (h *PostHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	p, err := h.service.Unpublish(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, p.Detail())
}

func listParamsFromQuery(r *http.Request) models.PostListParams {
	q := r.URL.Query()

	params := models.PostListParams{
		Status:        q.Get("status"),
		Category:      q.Get("category"),
		Author:        q.Get("author"),
		IncludeDrafts: parseBool(q.Get("include_drafts")),
		Search:        strings.TrimSpace(q.Get("search")),
		Ordering:      q.Get("ordering"),
		Limit:         parseInt(q.Get("limit"), 0),
		Offset:        parseInt(q.Get("offset"), 0),
	}
	if v := q.Get("is_featured"); v != "" {
		b := parseBool(v)
		params.IsFeatured = &b
	}
	return params
}

func parseBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func parseInt(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
