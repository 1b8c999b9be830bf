package domain

import "time"

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Gig represents a single scheduled live-music event.
//
// Location is nil when the record carries no usable coordinate; such gigs
// are excluded by an active proximity filter but pass through otherwise.
type Gig struct {
	ID        string
	Name      string
	SubHeader string
	Venue     string
	Blurb     string
	Address   string
	City      string
	StartsAt  time.Time
	Location  *Coordinate
	Genre     string
	GenreTags []string
	IsFree    bool
	// TicketPrice and TicketURL are display-only; filtering never reads them.
	TicketPrice string
	TicketURL   string
	ImageURL    string
	Likes       int
}

// GenreSet returns the gig's full genre vocabulary: the primary genre
// label plus all tags, de-duplicated.
func (g Gig) GenreSet() []string {
	out := make([]string, 0, len(g.GenreTags)+1)
	seen := make(map[string]struct{}, len(g.GenreTags)+1)
	if g.Genre != "" {
		out = append(out, g.Genre)
		seen[g.Genre] = struct{}{}
	}
	for _, tag := range g.GenreTags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		out = append(out, tag)
		seen[tag] = struct{}{}
	}
	return out
}
