package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"evcms/internal/models"
	"evcms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnquiryRepo[T any] struct {
	nextID int64
	recs   map[int64]*T
	ids    []int64
}

func newFakeEnquiryRepo[T any]() *fakeEnquiryRepo[T] {
	return &fakeEnquiryRepo[T]{nextID: 1, recs: map[int64]*T{}}
}

func (f *fakeEnquiryRepo[T]) Create(_ context.Context, rec *T) (*T, error) {
	cp := *rec
	id := f.nextID
	f.nextID++
	f.recs[id] = &cp
	f.ids = append(f.ids, id)
	out := cp
	return &out, nil
}

func (f *fakeEnquiryRepo[T]) List(_ context.Context, limit, offset int) ([]*T, int, error) {
	total := len(f.ids)
	out := make([]*T, 0, total)
	for _, id := range f.ids {
		cp := *f.recs[id]
		out = append(out, &cp)
	}
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeEnquiryRepo[T]) GetByID(_ context.Context, id int64) (*T, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeEnquiryRepo[T]) Update(_ context.Context, id int64, rec *T) (*T, error) {
	if _, ok := f.recs[id]; !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rec
	f.recs[id] = &cp
	out := cp
	return &out, nil
}

func (f *fakeEnquiryRepo[T]) Delete(_ context.Context, id int64) error {
	if _, ok := f.recs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.recs, id)
	for i, v := range f.ids {
		if v == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			break
		}
	}
	return nil
}

func TestEnquiryCreateStoresRawPayload(t *testing.T) {
	repo := newFakeEnquiryRepo[models.CustomerSupport]()
	svc := NewEnquiryService[models.CustomerSupport](repo, "customer_support")

	body := json.RawMessage(`{"name":"Asha","contact_number":"+91-9876543210","extra_field":"kept"}`)
	rec := &models.CustomerSupport{Name: "Asha", ContactNumber: "+91-9876543210"}

	created, err := svc.Create(context.Background(), rec, body)
	require.NoError(t, err)
	assert.JSONEq(t, string(body), string(created.RawPayload))
}

func TestEnquiryCreateValidation(t *testing.T) {
	repo := newFakeEnquiryRepo[models.CustomerSupport]()
	svc := NewEnquiryService[models.CustomerSupport](repo, "customer_support")

	// contact_number is the one required field on this form.
	_, err := svc.Create(context.Background(), &models.CustomerSupport{Name: "No Phone"}, nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "contact_number")

	_, err = svc.Create(context.Background(), &models.CustomerSupport{
		ContactNumber: "123",
		Email:         "not-an-email",
	}, nil)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
}

func TestEnquiryUpdatePreservesRawPayload(t *testing.T) {
	repo := newFakeEnquiryRepo[models.CustomerSupport]()
	svc := NewEnquiryService[models.CustomerSupport](repo, "customer_support")
	ctx := context.Background()

	body := json.RawMessage(`{"contact_number":"111"}`)
	_, err := svc.Create(ctx, &models.CustomerSupport{ContactNumber: "111"}, body)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, &models.CustomerSupport{ContactNumber: "222"})
	require.NoError(t, err)
	assert.Equal(t, "222", updated.ContactNumber)
	// The original submission body is immutable.
	assert.JSONEq(t, string(body), string(updated.RawPayload))
}

func TestEnquiryGetAndDelete(t *testing.T) {
	repo := newFakeEnquiryRepo[models.DownloadBrochure]()
	svc := NewEnquiryService[models.DownloadBrochure](repo, "download_brochure")
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.DownloadBrochure{Name: "Lee"}, nil)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Lee", got.Name)

	require.NoError(t, svc.Delete(ctx, 1))
	_, err = svc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrNotFound)
}

func TestEnquiryListPagination(t *testing.T) {
	repo := newFakeEnquiryRepo[models.TestDriveBooking]()
	svc := NewEnquiryService[models.TestDriveBooking](repo, "testdrive_booking")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, &models.TestDriveBooking{Name: "Rider"}, nil)
		require.NoError(t, err)
	}

	recs, total, err := svc.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, recs, 2)

	recs, total, err = svc.List(ctx, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, recs, 1)
}

func TestEnquiryDateWireFormat(t *testing.T) {
	// Dates cross the wire as plain YYYY-MM-DD.
	var booking models.TestDriveBooking
	err := json.Unmarshal([]byte(`{"name":"R","test_drive_date":"2026-08-26"}`), &booking)
	require.NoError(t, err)
	require.NotNil(t, booking.TestDriveDate)
	assert.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), booking.TestDriveDate.Time)

	out, err := json.Marshal(booking.TestDriveDate)
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-26"`, string(out))
}
