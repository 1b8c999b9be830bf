package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/joshua-simon/gig-fort-v2/internal/app"
	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

// ReminderScheduler is the minimal interface needed by the reminder endpoints.
type ReminderScheduler interface {
	Schedule(ctx context.Context, in app.ScheduleReminderInput) (domain.Reminder, error)
	Cancel(ctx context.Context, userID, gigID string) error
}

type scheduleReminderRequest struct {
	UserID      string `json:"user_id"`
	GigID       string `json:"gig_id"`
	LeadMinutes int    `json:"lead_minutes"`
}

type reminderResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	GigID       string    `json:"gig_id"`
	LeadMinutes int       `json:"lead_minutes"`
	FireAt      time.Time `json:"fire_at"`
	Status      string    `json:"status"`
}

// HandleReminders serves POST /reminders and DELETE /reminders.
func HandleReminders(svc ReminderScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req scheduleReminderRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			rem, err := svc.Schedule(r.Context(), app.ScheduleReminderInput{
				UserID:      req.UserID,
				GigID:       req.GigID,
				LeadMinutes: req.LeadMinutes,
			})
			if err != nil {
				switch err {
				case domain.ErrUserIDRequired:
					writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
				case domain.ErrInvalidID:
					writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
				case domain.ErrInvalidLeadTime:
					writeError(w, http.StatusBadRequest, codeInvalidLeadTime, err.Error())
				case domain.ErrReminderInPast:
					writeError(w, http.StatusUnprocessableEntity, codeReminderInPast, err.Error())
				case domain.ErrReminderExists:
					writeError(w, http.StatusConflict, codeReminderExists, err.Error())
				case domain.ErrGigNotFound:
					writeError(w, http.StatusNotFound, codeGigNotFound, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}

			writeJSON(w, http.StatusCreated, reminderResponse{
				ID:          rem.ID,
				UserID:      rem.UserID,
				GigID:       rem.GigID,
				LeadMinutes: rem.LeadMinutes,
				FireAt:      rem.FireAt,
				Status:      string(rem.Status),
			})
		case http.MethodDelete:
			userID := r.URL.Query().Get("user_id")
			gigID := r.URL.Query().Get("gig_id")
			err := svc.Cancel(r.Context(), userID, gigID)
			if err != nil {
				switch err {
				case domain.ErrUserIDRequired:
					writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
				case domain.ErrInvalidID:
					writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
				case domain.ErrReminderNotFound:
					writeError(w, http.StatusNotFound, codeReminderNotFound, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}
