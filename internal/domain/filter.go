package domain

// FilterMode tags the active filter configuration. Simple toggles and a
// custom criteria set are mutually exclusive by construction: installing
// one discards the other.
type FilterMode int

const (
	ModeUnfiltered FilterMode = iota
	ModeSimple
	ModeCustom
)

func (m FilterMode) String() string {
	switch m {
	case ModeSimple:
		return "simple"
	case ModeCustom:
		return "custom"
	default:
		return "unfiltered"
	}
}

// SimpleFilters are the two quick toggles exposed directly in the UI.
type SimpleFilters struct {
	NearMe       bool
	StartingSoon bool
}

// CustomFilters is a user-configured criteria set. A zero-valued sub-filter
// (DistanceKm == 0, TimeIntervalMinutes == 0, empty Genres) is inactive and
// must not be applied.
type CustomFilters struct {
	DistanceKm          float64
	TimeIntervalMinutes int
	Genres              []string
}

// Inert reports whether every sub-filter is inactive.
func (c CustomFilters) Inert() bool {
	return c.DistanceKm == 0 && c.TimeIntervalMinutes == 0 && len(c.Genres) == 0
}

const (
	// DefaultRadiusKm is the proximity radius used by the near-me toggle.
	DefaultRadiusKm = 1.0
	// DefaultStartingSoonMinutes is the look-ahead used by the starting-soon toggle.
	DefaultStartingSoonMinutes = 30
)

// ProximityStatus reports whether a requested proximity filter was actually
// applied. When the user's location is unknown the filter fails open and
// Reason is set to ReasonNoLocation.
type ProximityStatus struct {
	Requested bool
	Applied   bool
	Reason    string
}

const ReasonNoLocation = "no-location"
