package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

// Gigs have no published end time; a fixed duration keeps calendar blocks
// reasonable.
const icsEventDuration = 2 * time.Hour

// HandleGigsWeekICS exports the next seven days of visible gigs as an
// iCalendar feed.
func HandleGigsWeekICS(svc GigViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		cal := ical.NewCalendar()
		cal.SetMethod(ical.MethodPublish)
		cal.SetProductId("-//Gig Fort//gig feed//EN")
		cal.SetName("Gig Fort: this week")

		for _, grp := range svc.ThisWeek() {
			for _, gig := range grp.Gigs {
				ev := cal.AddEvent(gig.ID + "@gigfort")
				ev.SetDtStampTime(time.Now().UTC())
				ev.SetStartAt(gig.StartsAt)
				ev.SetEndAt(gig.StartsAt.Add(icsEventDuration))
				ev.SetSummary(gig.Name)
				ev.SetLocation(icsLocation(gig))
				if desc := icsDescription(gig); desc != "" {
					ev.SetDescription(desc)
				}
				if gig.TicketURL != "" {
					ev.SetURL(gig.TicketURL)
				}
			}
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="gigs-this-week.ics"`)
		_, _ = w.Write([]byte(cal.Serialize()))
	}
}

func icsLocation(gig domain.Gig) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{gig.Venue, gig.Address, gig.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func icsDescription(gig domain.Gig) string {
	parts := make([]string, 0, 3)
	if gig.SubHeader != "" {
		parts = append(parts, gig.SubHeader)
	}
	if gig.Blurb != "" {
		parts = append(parts, gig.Blurb)
	}
	if gig.IsFree {
		parts = append(parts, "Free entry")
	} else if gig.TicketPrice != "" {
		parts = append(parts, fmt.Sprintf("Tickets: %s", gig.TicketPrice))
	}
	return strings.Join(parts, "\n")
}
