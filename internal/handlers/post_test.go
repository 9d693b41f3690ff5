package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"evcms/internal/models"
	"evcms/internal/services"
	"evcms/internal/utils/helpers"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPostService returns canned values so the tests exercise only the
// HTTP layer: routing, decoding and status mapping.
type stubPostService struct {
	post       *models.Post
	items      []*models.PostListItem
	total      int
	err        error
	lastParams models.PostListParams
}

func (s *stubPostService) Create(_ context.Context, _ models.PostInput) (*models.Post, error) {
	return s.post, s.err
}

func (s *stubPostService) List(_ context.Context, params models.PostListParams) ([]*models.PostListItem, int, error) {
	s.lastParams = params
	return s.items, s.total, s.err
}

func (s *stubPostService) GetBySlug(_ context.Context, _ string, _ bool) (*models.Post, error) {
	return s.post, s.err
}

func (s *stubPostService) Update(_ context.Context, _ string, _ models.PostInput, _ bool) (*models.Post, error) {
	return s.post, s.err
}

func (s *stubPostService) Delete(_ context.Context, _ string) error { return s.err }

func (s *stubPostService) Publish(_ context.Context, _ string) (*models.Post, error) {
	return s.post, s.err
}

func (s *stubPostService) Unpublish(_ context.Context, _ string) (*models.Post, error) {
	return s.post, s.err
}

func postRouter(svc services.PostService) *mux.Router {
	h := NewPostHandler(svc)
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/blogs", h.List).Methods(http.MethodGet)
	api.HandleFunc("/blogs", h.Create).Methods(http.MethodPost)
	api.HandleFunc("/blogs/featured", h.Featured).Methods(http.MethodGet)
	api.HandleFunc("/blogs/by_category", h.ByCategory).Methods(http.MethodGet)
	api.HandleFunc("/blogs/latest", h.Latest).Methods(http.MethodGet)
	api.HandleFunc("/blogs/{slug}", h.Retrieve).Methods(http.MethodGet)
	api.HandleFunc("/blogs/{slug}", h.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/blogs/{slug}/publish", h.Publish).Methods(http.MethodPost)
	api.HandleFunc("/blogs/{slug}/unpublish", h.Unpublish).Methods(http.MethodPost)
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) helpers.Response {
	t.Helper()
	var resp helpers.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestListEnvelope(t *testing.T) {
	svc := &stubPostService{
		items: []*models.PostListItem{{ID: 1, Title: "One", Slug: "one"}},
		total: 7,
	}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs?limit=1&offset=0", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 7, data["count"])
	assert.Len(t, data["results"], 1)
}

func TestListQueryParsing(t *testing.T) {
	svc := &stubPostService{}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/blogs?category=news&is_featured=true&include_drafts=true&search=ev&ordering=-views_count&limit=3&offset=6", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "news", svc.lastParams.Category)
	require.NotNil(t, svc.lastParams.IsFeatured)
	assert.True(t, *svc.lastParams.IsFeatured)
	assert.True(t, svc.lastParams.IncludeDrafts)
	assert.Equal(t, "ev", svc.lastParams.Search)
	assert.Equal(t, "-views_count", svc.lastParams.Ordering)
	assert.Equal(t, 3, svc.lastParams.Limit)
	assert.Equal(t, 6, svc.lastParams.Offset)
}

func TestRetrieveNotFound(t *testing.T) {
	svc := &stubPostService{err: services.ErrNotFound}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs/ghost", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decodeResponse(t, rec).Error)
}

func TestCreateInvalidJSON(t *testing.T) {
	svc := &stubPostService{}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateValidationFields(t *testing.T) {
	svc := &stubPostService{err: services.NewValidationError("title", "this field is required")}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "validation failed", resp.Error)
	assert.Equal(t, "this field is required", resp.Fields["title"])
}

func TestCreateSlugConflict(t *testing.T) {
	svc := &stubPostService{err: services.ErrSlugTaken}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(`{"title":"Dup"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPublishConflict(t *testing.T) {
	svc := &stubPostService{err: services.ErrAlreadyPublished}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/blogs/live-post/publish", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "post is already published", decodeResponse(t, rec).Error)
}

func TestUnpublishConflict(t *testing.T) {
	svc := &stubPostService{err: services.ErrAlreadyDraft}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/blogs/draft-post/unpublish", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestByCategoryRequiresParam(t *testing.T) {
	svc := &stubPostService{}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs/by_category", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestByCategoryUnknownMatchesNothing(t *testing.T) {
	svc := &stubPostService{}
	r := postRouter(svc)

	// Unknown categories are not rejected; they filter down to an empty list.
	req := httptest.NewRequest(http.MethodGet, "/api/blogs/by_category?category=bicycles", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bicycles", svc.lastParams.Category)
	resp := decodeResponse(t, rec)
	assert.Empty(t, resp.Error)
	envelope, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 0, envelope["count"])
}

func TestFeaturedForcesFilter(t *testing.T) {
	svc := &stubPostService{}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs/featured?include_drafts=true", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastParams.IsFeatured)
	assert.True(t, *svc.lastParams.IsFeatured)
	// The public endpoint never exposes drafts.
	assert.False(t, svc.lastParams.IncludeDrafts)
}

func TestLatestDefaultsToFive(t *testing.T) {
	svc := &stubPostService{}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs/latest", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.lastParams.Limit)
	assert.Equal(t, "-published_at", svc.lastParams.Ordering)
}

func TestDeleteNoContent(t *testing.T) {
	svc := &stubPostService{}
	r := postRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/blogs/old-post", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
