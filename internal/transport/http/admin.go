package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/joshua-simon/gig-fort-v2/internal/app"
	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

// AdminGigService is the minimal interface needed for admin gig endpoints.
type AdminGigService interface {
	CreateGig(ctx context.Context, in app.CreateGigInput) (domain.Gig, error)
	ListGigs(ctx context.Context) ([]domain.Gig, error)
}

type createGigRequest struct {
	Name        string   `json:"name"`
	SubHeader   string   `json:"sub_header,omitempty"`
	Venue       string   `json:"venue"`
	Blurb       string   `json:"blurb,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city,omitempty"`
	StartsAt    string   `json:"starts_at"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Genre       string   `json:"genre,omitempty"`
	GenreTags   []string `json:"genre_tags,omitempty"`
	IsFree      bool     `json:"is_free,omitempty"`
	TicketPrice string   `json:"ticket_price,omitempty"`
	TicketURL   string   `json:"ticket_url,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// HandleAdminGigs returns an HTTP handler for admin gig creation/listing.
// The caller is expected to wrap it with the auth middleware.
func HandleAdminGigs(svc AdminGigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gigs, err := svc.ListGigs(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			writeJSON(w, http.StatusOK, toGigResponses(gigs))
		case http.MethodPost:
			var req createGigRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.Name == "" {
				writeError(w, http.StatusBadRequest, codeGigNameRequired, domain.ErrGigNameRequired.Error())
				return
			}
			if req.Venue == "" {
				writeError(w, http.StatusBadRequest, codeVenueRequired, domain.ErrVenueRequired.Error())
				return
			}

			startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidCriteria, "invalid starts_at format")
				return
			}

			gig, err := svc.CreateGig(r.Context(), app.CreateGigInput{
				Name:        req.Name,
				SubHeader:   req.SubHeader,
				Venue:       req.Venue,
				Blurb:       req.Blurb,
				Address:     req.Address,
				City:        req.City,
				StartsAt:    startsAt,
				Latitude:    req.Latitude,
				Longitude:   req.Longitude,
				Genre:       req.Genre,
				GenreTags:   req.GenreTags,
				IsFree:      req.IsFree,
				TicketPrice: req.TicketPrice,
				TicketURL:   req.TicketURL,
				ImageURL:    req.ImageURL,
			})
			if err != nil {
				switch err {
				case domain.ErrGigNameRequired:
					writeError(w, http.StatusBadRequest, codeGigNameRequired, err.Error())
				case domain.ErrVenueRequired:
					writeError(w, http.StatusBadRequest, codeVenueRequired, err.Error())
				case domain.ErrInvalidCriteria:
					writeError(w, http.StatusBadRequest, codeInvalidCriteria, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}

			writeJSON(w, http.StatusCreated, toGigResponse(gig))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}
