package http

import (
	"encoding/json"
	"net/http"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

// FilterEngine is the minimal interface needed by the filter endpoints.
type FilterEngine interface {
	ToggleProximity()
	ToggleStartingSoon()
	ApplyCustomFilters(c domain.CustomFilters) error
	ResetFilters()
	Mode() (domain.FilterMode, domain.SimpleFilters, domain.CustomFilters)
}

// LocationSetter is the minimal interface needed by the location endpoints.
type LocationSetter interface {
	SetLocation(c domain.Coordinate)
	ClearLocation()
}

type filterStateResponse struct {
	Mode         string   `json:"mode"`
	NearMe       bool     `json:"near_me"`
	StartingSoon bool     `json:"starting_soon"`
	DistanceKm   float64  `json:"distance_km,omitempty"`
	TimeMinutes  int      `json:"time_interval_minutes,omitempty"`
	Genres       []string `json:"genres,omitempty"`
}

func writeFilterState(w http.ResponseWriter, eng FilterEngine) {
	mode, simple, custom := eng.Mode()
	writeJSON(w, http.StatusOK, filterStateResponse{
		Mode:         mode.String(),
		NearMe:       simple.NearMe,
		StartingSoon: simple.StartingSoon,
		DistanceKm:   custom.DistanceKm,
		TimeMinutes:  custom.TimeIntervalMinutes,
		Genres:       custom.Genres,
	})
}

// HandleToggleProximity flips the near-me toggle.
func HandleToggleProximity(eng FilterEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		eng.ToggleProximity()
		writeFilterState(w, eng)
	}
}

// HandleToggleStartingSoon flips the starting-soon toggle.
func HandleToggleStartingSoon(eng FilterEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		eng.ToggleStartingSoon()
		writeFilterState(w, eng)
	}
}

type customFiltersRequest struct {
	DistanceKm          float64  `json:"distance_km"`
	TimeIntervalMinutes int      `json:"time_interval_minutes"`
	Genres              []string `json:"genres"`
}

// HandleFilters serves PUT /filters/custom and DELETE /filters.
func HandleFilters(eng FilterEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			var req customFiltersRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			err := eng.ApplyCustomFilters(domain.CustomFilters{
				DistanceKm:          req.DistanceKm,
				TimeIntervalMinutes: req.TimeIntervalMinutes,
				Genres:              req.Genres,
			})
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidCriteria, err.Error())
				return
			}
			writeFilterState(w, eng)
		case http.MethodDelete:
			eng.ResetFilters()
			writeFilterState(w, eng)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HandleLocation serves PUT /location and DELETE /location.
func HandleLocation(loc LocationSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			var req locationRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
				writeError(w, http.StatusBadRequest, codeInvalidCoordinates, "coordinates out of range")
				return
			}
			loc.SetLocation(domain.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude})
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			loc.ClearLocation()
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}
