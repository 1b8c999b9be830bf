package domain

// DayGroup is one calendar day's worth of gigs. Gigs are ordered by
// ascending start time; groups are produced earliest day first.
type DayGroup struct {
	Label string
	Gigs  []Gig
}
