package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidID          = "invalid_id"
	codeInvalidCoordinates = "invalid_coordinates"
	codeInvalidCriteria    = "invalid_criteria"
	codeGigNotFound        = "gig_not_found"
	codeGigNameRequired    = "gig_name_required"
	codeVenueRequired      = "venue_required"
	codeUserIDRequired     = "user_id_required"
	codeInvalidLeadTime    = "invalid_lead_time"
	codeReminderInPast     = "reminder_in_past"
	codeReminderExists     = "reminder_exists"
	codeReminderNotFound   = "reminder_not_found"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
