package filter

import (
	"fmt"
	"time"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

// SameDay reports whether two instants fall on the same calendar day in the
// given zone.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// GigsToday selects gigs starting on the same calendar day as now. A gig
// that already started today is still included.
func GigsToday(gigs []domain.Gig, now time.Time, loc *time.Location) []domain.Gig {
	out := make([]domain.Gig, 0, len(gigs))
	for _, g := range gigs {
		if SameDay(g.StartsAt, now, loc) {
			out = append(out, g)
		}
	}
	return out
}

// GigsThisWeek selects gigs with now <= start < now+7d and groups them by
// calendar day, earliest day first, each day sorted by start time.
func GigsThisWeek(gigs []domain.Gig, now time.Time, loc *time.Location) []domain.DayGroup {
	weekFromNow := now.Add(7 * 24 * time.Hour)
	inWindow := make([]domain.Gig, 0, len(gigs))
	for _, g := range gigs {
		if g.StartsAt.Before(now) || !g.StartsAt.Before(weekFromNow) {
			continue
		}
		inWindow = append(inWindow, g)
	}
	return GroupByDay(inWindow, loc)
}

// StartsWithin reports whether the gig starts inside [now, now+threshold],
// inclusive on both ends. Sub-second components are ignored; the start
// timestamp's second resolution is authoritative.
func StartsWithin(g domain.Gig, now time.Time, thresholdMinutes int) bool {
	start := g.StartsAt.Unix()
	lo := now.Unix()
	hi := lo + int64(thresholdMinutes)*60
	return start >= lo && start <= hi
}

// DayLabel formats an instant as "Mon Jan 1st 2024" in the given zone.
func DayLabel(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	return fmt.Sprintf("%s %s %d%s %d",
		t.Format("Mon"),
		t.Format("Jan"),
		t.Day(),
		ordinalSuffix(t.Day()),
		t.Year(),
	)
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
