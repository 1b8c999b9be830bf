package http

import "net/http"

type healthResponse struct {
	Status    string `json:"status"`
	FeedError string `json:"feed_error,omitempty"`
}

// HandleHealth reports liveness plus the gig feed state. A failing feed is
// "degraded", not down: the service keeps serving its last snapshot.
func HandleHealth(feed interface{ Status() error }) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		if feed != nil {
			if err := feed.Status(); err != nil {
				resp.Status = "degraded"
				resp.FeedError = err.Error()
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
