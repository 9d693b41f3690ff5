package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"evcms/internal/models"
	"evcms/internal/repository"
	"evcms/internal/reqctx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSEORepo struct {
	nextID int64
	tags   map[string]*models.SEOTag
	site   *models.SiteSEO
}

func newFakeSEORepo() *fakeSEORepo {
	return &fakeSEORepo{nextID: 1, tags: map[string]*models.SEOTag{}}
}

func (f *fakeSEORepo) Create(_ context.Context, t *models.SEOTag) (*models.SEOTag, error) {
	if _, ok := f.tags[t.PageID]; ok {
		return nil, repository.ErrUniqueViolation
	}
	cp := *t
	cp.ID = f.nextID
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	f.nextID++
	f.tags[cp.PageID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeSEORepo) GetByPageID(_ context.Context, pageID string) (*models.SEOTag, error) {
	t, ok := f.tags[pageID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeSEORepo) List(_ context.Context, _ models.SEOListParams) ([]*models.SEOTag, error) {
	out := make([]*models.SEOTag, 0, len(f.tags))
	for _, t := range f.tags {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSEORepo) Update(_ context.Context, t *models.SEOTag) (*models.SEOTag, error) {
	for pageID, existing := range f.tags {
		if existing.ID == t.ID {
			if pageID != t.PageID {
				if _, taken := f.tags[t.PageID]; taken {
					return nil, repository.ErrUniqueViolation
				}
				delete(f.tags, pageID)
			}
			cp := *t
			cp.UpdatedAt = time.Now().UTC()
			f.tags[cp.PageID] = &cp
			out := cp
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSEORepo) Delete(_ context.Context, pageID string) error {
	if _, ok := f.tags[pageID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tags, pageID)
	return nil
}

func (f *fakeSEORepo) PageIDExists(_ context.Context, pageID string, excludeID int64) (bool, error) {
	t, ok := f.tags[pageID]
	return ok && t.ID != excludeID, nil
}

func (f *fakeSEORepo) LoadSite(_ context.Context) (*models.SiteSEO, error) {
	if f.site == nil {
		now := time.Now().UTC()
		f.site = &models.SiteSEO{ID: 1, CreatedAt: now, UpdatedAt: now}
	}
	cp := *f.site
	return &cp, nil
}

func (f *fakeSEORepo) UpdateSite(_ context.Context, s *models.SiteSEO) (*models.SiteSEO, error) {
	cp := *s
	cp.ID = 1
	cp.UpdatedAt = time.Now().UTC()
	f.site = &cp
	out := cp
	return &out, nil
}

func newTestSEOService() (SEOService, *fakeSEORepo) {
	repo := newFakeSEORepo()
	return NewSEOService(repo, "https://www.evall.in"), repo
}

func basicTag(pageID string) *models.SEOTag {
	return &models.SEOTag{
		PageID:          pageID,
		PagePath:        "/" + pageID,
		PageName:        "Home",
		PageTitle:       "EV Charging Solutions",
		MetaDescription: "Fast charging for electric fleets.",
	}
}

func TestSEOCreateAppliesFallbackChain(t *testing.T) {
	svc, _ := newTestSEOService()

	created, err := svc.Create(context.Background(), basicTag("home"))
	require.NoError(t, err)

	// Open Graph falls back to the basic tags.
	assert.Equal(t, "EV Charging Solutions", created.OGTitle)
	assert.Equal(t, "Fast charging for electric fleets.", created.OGDescription)
	assert.Equal(t, models.OGTypeWebsite, created.OGType)
	assert.Equal(t, "https://www.evall.in/home", created.OGURL)

	// Twitter falls back to Open Graph.
	assert.Equal(t, models.TwitterCardSummaryLargeImage, created.TwitterCard)
	assert.Equal(t, created.OGTitle, created.TwitterTitle)
	assert.Equal(t, created.OGDescription, created.TwitterDescription)

	assert.Equal(t, models.DefaultRobotsMeta, created.RobotsMeta)
}

func TestSEOCreateKeepsExplicitValues(t *testing.T) {
	svc, _ := newTestSEOService()

	tag := basicTag("pricing")
	tag.OGTitle = "Custom OG Title"
	tag.TwitterDescription = "Custom tweet text"

	created, err := svc.Create(context.Background(), tag)
	require.NoError(t, err)
	assert.Equal(t, "Custom OG Title", created.OGTitle)
	assert.Equal(t, "Custom OG Title", created.TwitterTitle)
	assert.Equal(t, "Custom tweet text", created.TwitterDescription)
}

func TestSEOCreateRejectsDuplicatePageID(t *testing.T) {
	svc, _ := newTestSEOService()
	ctx := context.Background()

	_, err := svc.Create(ctx, basicTag("about"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, basicTag("about"))
	assert.ErrorIs(t, err, ErrPageIDTaken)
}

func TestSEOCreateValidation(t *testing.T) {
	svc, _ := newTestSEOService()

	tag := basicTag("long-title")
	tag.PageTitle = strings.Repeat("t", 80) // over the 70 char cap

	_, err := svc.Create(context.Background(), tag)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "page_title")
}

func TestSEOCreateRecordsActor(t *testing.T) {
	svc, _ := newTestSEOService()
	ctx := reqctx.WithSubject(context.Background(), "editor@example.com")

	created, err := svc.Create(ctx, basicTag("contact"))
	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", created.CreatedBy)
	assert.Equal(t, "editor@example.com", created.UpdatedBy)
}

func TestSEOTimestampsInIST(t *testing.T) {
	svc, _ := newTestSEOService()

	created, err := svc.Create(context.Background(), basicTag("tz"))
	require.NoError(t, err)

	_, offset := created.CreatedAt.Zone()
	assert.Equal(t, 5*3600+1800, offset)
}

func TestSEOUpdateRenamePageIDConflict(t *testing.T) {
	svc, _ := newTestSEOService()
	ctx := context.Background()

	_, err := svc.Create(ctx, basicTag("a"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, basicTag("b"))
	require.NoError(t, err)

	renamed := basicTag("a")
	_, err = svc.Update(ctx, "b", renamed, false)
	assert.ErrorIs(t, err, ErrPageIDTaken)
}

func TestSEOPartialUpdateKeepsOmittedFields(t *testing.T) {
	svc, _ := newTestSEOService()
	ctx := context.Background()

	tag := basicTag("home")
	tag.OGTitle = "Original OG Title"
	_, err := svc.Create(ctx, tag)
	require.NoError(t, err)

	patch := &models.SEOTag{MetaDescription: "Fresh description"}
	updated, err := svc.Update(ctx, "home", patch, true)
	require.NoError(t, err)

	assert.Equal(t, "Fresh description", updated.MetaDescription)
	assert.Equal(t, "Original OG Title", updated.OGTitle)
	assert.Equal(t, basicTag("home").PageTitle, updated.PageTitle)
}

func TestSEODeleteUnknownPage(t *testing.T) {
	svc, _ := newTestSEOService()
	assert.ErrorIs(t, svc.Delete(context.Background(), "ghost"), ErrNotFound)
}

func TestSiteSEOSingleton(t *testing.T) {
	svc, _ := newTestSEOService()
	ctx := context.Background()

	// The singleton materializes on first read.
	site, err := svc.GetSite(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), site.ID)

	verification := "google-code-123"
	updated, err := svc.UpdateSite(ctx, models.SiteSEOInput{GoogleSiteVerification: &verification})
	require.NoError(t, err)
	assert.Equal(t, verification, updated.GoogleSiteVerification)
	assert.Equal(t, int64(1), updated.ID)

	// Partial update leaves the other fields alone.
	header := "<script>analytics()</script>"
	updated, err = svc.UpdateSite(ctx, models.SiteSEOInput{HeaderScript: &header})
	require.NoError(t, err)
	assert.Equal(t, verification, updated.GoogleSiteVerification)
	assert.Equal(t, header, updated.HeaderScript)
}

func TestFullSEOCombinesTagsAndSite(t *testing.T) {
	svc, _ := newTestSEOService()
	ctx := context.Background()

	_, err := svc.Create(ctx, basicTag("home"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, basicTag("about"))
	require.NoError(t, err)

	full, err := svc.FullSEO(ctx)
	require.NoError(t, err)
	assert.Len(t, full.SEOTags, 2)
	require.NotNil(t, full.AdvancedSEO)
	assert.Equal(t, int64(1), full.AdvancedSEO.ID)
}
