package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joshua-simon/gig-fort-v2/internal/app"
	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

type stubAdminGigService struct {
	gig  domain.Gig
	gigs []domain.Gig
	err  error
}

func (s *stubAdminGigService) CreateGig(_ context.Context, _ app.CreateGigInput) (domain.Gig, error) {
	return s.gig, s.err
}

func (s *stubAdminGigService) ListGigs(_ context.Context) ([]domain.Gig, error) {
	return s.gigs, s.err
}

func TestHandleAdminGigs_Create(t *testing.T) {
	t.Parallel()

	created := domain.Gig{
		ID:       "g1",
		Name:     "Midnight Ramblers",
		Venue:    "San Fran",
		StartsAt: time.Date(2025, 3, 7, 20, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"name":"Midnight Ramblers","venue":"San Fran","starts_at":"2025-03-07T20:00:00Z"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"id":"g1"`,
		},
		{
			name:           "invalid json",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing name",
			body:           `{"venue":"San Fran","starts_at":"2025-03-07T20:00:00Z"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeGigNameRequired,
		},
		{
			name:           "missing venue",
			body:           `{"name":"Midnight Ramblers","starts_at":"2025-03-07T20:00:00Z"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeVenueRequired,
		},
		{
			name:           "bad starts_at",
			body:           `{"name":"Midnight Ramblers","venue":"San Fran","starts_at":"next friday"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "validation failure",
			body:           `{"name":"Midnight Ramblers","venue":"San Fran","starts_at":"2025-03-07T20:00:00Z","latitude":123}`,
			serviceErr:     domain.ErrInvalidCriteria,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "internal error",
			body:           `{"name":"Midnight Ramblers","venue":"San Fran","starts_at":"2025-03-07T20:00:00Z"}`,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubAdminGigService{gig: created, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/admin/gigs", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleAdminGigs(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleAdminGigs_List(t *testing.T) {
	t.Parallel()

	svc := &stubAdminGigService{gigs: []domain.Gig{sampleGig("g1", "One"), sampleGig("g2", "Two")}}
	req := httptest.NewRequest(http.MethodGet, "/admin/gigs", nil)
	rec := httptest.NewRecorder()

	HandleAdminGigs(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"name":"Two"`) {
		t.Fatalf("expected both gigs in response, got %q", rec.Body.String())
	}
}
