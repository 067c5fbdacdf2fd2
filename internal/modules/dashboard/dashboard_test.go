package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/intloko-backend/internal/domain"
	"github.com/georgemunganga/intloko-backend/internal/modules/profile"
	"github.com/georgemunganga/intloko-backend/internal/modules/vendor"
)

type vendorListerFunc func(ctx context.Context) ([]*vendor.Vendor, error)

func (f vendorListerFunc) List(ctx context.Context) ([]*vendor.Vendor, error) { return f(ctx) }

type profileListerFunc func(ctx context.Context) ([]*profile.Profile, error)

func (f profileListerFunc) List(ctx context.Context) ([]*profile.Profile, error) { return f(ctx) }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func testVendors() []*vendor.Vendor {
	return []*vendor.Vendor{
		{Title: "Mama's Pot", Category: []string{"Mogodu", "Assorted"}, Rating: 4.5, Tags: []string{"spicy"}, InsertedAt: day(2024, time.June, 3)},
		{Title: "Kasi Grill", Category: []string{"Mogodu"}, Rating: 4, Tags: []string{}, InsertedAt: day(2024, time.June, 1)},
		{Title: "Eastside", Category: []string{"Hard Body"}, Rating: 3.2, Tags: []string{"a", "b"}, InsertedAt: day(2023, time.March, 9)},
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(testVendors())

	assert.Equal(t, 3, s.Vendors)
	assert.Equal(t, 3, s.Categories)
	assert.Equal(t, 3.9, s.AverageRating)
	assert.Equal(t, 2, s.Tagged)
	require.Len(t, s.Recent, 3)
	assert.Equal(t, "Mama's Pot", s.Recent[0].Title)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)
	assert.Zero(t, s.Vendors)
	assert.Zero(t, s.AverageRating)
	assert.NotNil(t, s.Recent)
	assert.Empty(t, s.Recent)
}

func TestSummarize_RecentIsCapped(t *testing.T) {
	t.Parallel()

	var vendors []*vendor.Vendor
	for i := 0; i < 8; i++ {
		vendors = append(vendors, &vendor.Vendor{Title: string(rune('A' + i))})
	}
	s := Summarize(vendors)
	require.Len(t, s.Recent, RecentLimit)
	assert.Equal(t, "A", s.Recent[0].Title)
}

func TestChart(t *testing.T) {
	t.Parallel()

	profiles := []*profile.Profile{
		{UpdatedAt: day(2024, time.June, 10)},
		{UpdatedAt: day(2024, time.January, 2)},
	}

	all := Chart(testVendors(), profiles, 0)
	require.Len(t, all, 12)
	assert.Equal(t, "Jan", all[0].Name)
	assert.Equal(t, "Dec", all[11].Name)
	assert.Equal(t, 2, all[5].Vendors)
	assert.Equal(t, 1, all[5].Users)
	assert.Equal(t, 1, all[2].Vendors)
	assert.Equal(t, 1, all[0].Users)

	only2024 := Chart(testVendors(), profiles, 2024)
	assert.Zero(t, only2024[2].Vendors)
	assert.Equal(t, 2, only2024[5].Vendors)
}

func TestChart_Empty(t *testing.T) {
	t.Parallel()

	buckets := Chart(nil, nil, 0)
	require.Len(t, buckets, 12)
	for _, b := range buckets {
		assert.Zero(t, b.Vendors)
		assert.Zero(t, b.Users)
	}
}

func TestService_Overview(t *testing.T) {
	t.Parallel()

	svc := NewService(
		vendorListerFunc(func(ctx context.Context) ([]*vendor.Vendor, error) { return testVendors(), nil }),
		profileListerFunc(func(ctx context.Context) ([]*profile.Profile, error) {
			return []*profile.Profile{{UpdatedAt: day(2024, time.June, 10)}}, nil
		}),
		newTestLogger(),
	)

	o, err := svc.Overview(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, o.Summary.Vendors)
	assert.Equal(t, 1, o.Chart[5].Users)
}

func TestService_Overview_ReadFailure(t *testing.T) {
	t.Parallel()

	readErr := &domain.ReadError{Entity: "profile", Err: errors.New("timeout")}
	svc := NewService(
		vendorListerFunc(func(ctx context.Context) ([]*vendor.Vendor, error) { return testVendors(), nil }),
		profileListerFunc(func(ctx context.Context) ([]*profile.Profile, error) { return nil, readErr }),
		newTestLogger(),
	)

	_, err := svc.Overview(context.Background(), 0)
	var re *domain.ReadError
	assert.ErrorAs(t, err, &re)
}

func TestHandler_Overview(t *testing.T) {
	t.Parallel()

	svc := NewService(
		vendorListerFunc(func(ctx context.Context) ([]*vendor.Vendor, error) { return nil, nil }),
		profileListerFunc(func(ctx context.Context) ([]*profile.Profile, error) { return nil, nil }),
		newTestLogger(),
	)
	router := chi.NewRouter()
	NewHandler(svc, newTestLogger()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"average_rating":0`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/?year=abc", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
