package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/joshua-simon/gig-fort-v2/internal/app"
	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

// GigViewer is the minimal interface needed for the public gig views.
type GigViewer interface {
	Visible() app.VisibleResult
	Today() []domain.Gig
	ThisWeek() []domain.DayGroup
	GetGig(ctx context.Context, id string) (domain.Gig, error)
}

// EngagementToggler is the minimal interface needed for like/save toggles.
type EngagementToggler interface {
	ToggleLike(ctx context.Context, userID, gigID string) (bool, error)
	ToggleSave(ctx context.Context, userID, gigID string) (bool, error)
}

// SavedLister is the minimal interface needed to list a user's saved gigs.
type SavedLister interface {
	SavedGigs(ctx context.Context, userID string) ([]domain.Gig, error)
}

type gigResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SubHeader   string    `json:"sub_header,omitempty"`
	Venue       string    `json:"venue"`
	Blurb       string    `json:"blurb,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	GenreTags   []string  `json:"genre_tags"`
	IsFree      bool      `json:"is_free"`
	TicketPrice string    `json:"ticket_price,omitempty"`
	TicketURL   string    `json:"ticket_url,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Likes       int       `json:"likes"`
}

func toGigResponse(g domain.Gig) gigResponse {
	resp := gigResponse{
		ID:          g.ID,
		Name:        g.Name,
		SubHeader:   g.SubHeader,
		Venue:       g.Venue,
		Blurb:       g.Blurb,
		Address:     g.Address,
		City:        g.City,
		StartsAt:    g.StartsAt,
		Genre:       g.Genre,
		GenreTags:   g.GenreTags,
		IsFree:      g.IsFree,
		TicketPrice: g.TicketPrice,
		TicketURL:   g.TicketURL,
		ImageURL:    g.ImageURL,
		Likes:       g.Likes,
	}
	if g.Location != nil {
		lat, lon := g.Location.Latitude, g.Location.Longitude
		resp.Latitude = &lat
		resp.Longitude = &lon
	}
	if resp.GenreTags == nil {
		resp.GenreTags = []string{}
	}
	return resp
}

func toGigResponses(gigs []domain.Gig) []gigResponse {
	out := make([]gigResponse, 0, len(gigs))
	for _, g := range gigs {
		out = append(out, toGigResponse(g))
	}
	return out
}

type proximityResponse struct {
	Requested bool   `json:"requested"`
	Applied   bool   `json:"applied"`
	Reason    string `json:"reason,omitempty"`
}

type gigListResponse struct {
	Gigs      []gigResponse     `json:"gigs"`
	Proximity proximityResponse `json:"proximity"`
	Degraded  bool              `json:"degraded"`
	FeedError string            `json:"feed_error,omitempty"`
}

// HandleGigs returns the visible gig list plus degraded-mode signals.
func HandleGigs(svc GigViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		result := svc.Visible()
		resp := gigListResponse{
			Gigs: toGigResponses(result.Gigs),
			Proximity: proximityResponse{
				Requested: result.Proximity.Requested,
				Applied:   result.Proximity.Applied,
				Reason:    result.Proximity.Reason,
			},
		}
		if result.FeedError != nil {
			resp.Degraded = true
			resp.FeedError = result.FeedError.Error()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGigsToday returns the visible gigs starting today.
func HandleGigsToday(svc GigViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, toGigResponses(svc.Today()))
	}
}

type dayGroupResponse struct {
	Label string        `json:"label"`
	Gigs  []gigResponse `json:"gigs"`
}

// HandleGigsWeek returns the next seven days of visible gigs, day-grouped.
func HandleGigsWeek(svc GigViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		groups := svc.ThisWeek()
		resp := make([]dayGroupResponse, 0, len(groups))
		for _, grp := range groups {
			resp = append(resp, dayGroupResponse{
				Label: grp.Label,
				Gigs:  toGigResponses(grp.Gigs),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGigItem serves /gigs/{id} and the like/save toggle subroutes.
func HandleGigItem(view GigViewer, eng EngagementToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gigID, action, ok := parseGigPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			gig, err := view.GetGig(r.Context(), gigID)
			if err != nil {
				switch err {
				case domain.ErrInvalidID:
					writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
				case domain.ErrGigNotFound:
					writeError(w, http.StatusNotFound, codeGigNotFound, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}
			writeJSON(w, http.StatusOK, toGigResponse(gig))
		case "like", "save":
			handleToggle(w, r, eng, gigID, action)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

type toggleRequest struct {
	UserID string `json:"user_id"`
}

type toggleResponse struct {
	GigID  string `json:"gig_id"`
	Active bool   `json:"active"`
}

func handleToggle(w http.ResponseWriter, r *http.Request, eng EngagementToggler, gigID, action string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	var req toggleRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	var (
		active bool
		err    error
	)
	if action == "like" {
		active, err = eng.ToggleLike(r.Context(), req.UserID, gigID)
	} else {
		active, err = eng.ToggleSave(r.Context(), req.UserID, gigID)
	}
	if err != nil {
		switch err {
		case domain.ErrUserIDRequired:
			writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
		case domain.ErrInvalidID:
			writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		case domain.ErrGigNotFound:
			writeError(w, http.StatusNotFound, codeGigNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{GigID: gigID, Active: active})
}

// HandleSaved lists the gigs a user has saved.
func HandleSaved(svc SavedLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		gigs, err := svc.SavedGigs(r.Context(), r.URL.Query().Get("user_id"))
		if err != nil {
			switch err {
			case domain.ErrUserIDRequired:
				writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, toGigResponses(gigs))
	}
}

// parseGigPath splits /gigs/{id} or /gigs/{id}/{action}.
func parseGigPath(path string) (id, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "gigs" || parts[1] == "" {
		return "", "", false
	}
	if len(parts) == 3 {
		if parts[2] == "" {
			return "", "", false
		}
		return parts[1], parts[2], true
	}
	return parts[1], "", true
}
