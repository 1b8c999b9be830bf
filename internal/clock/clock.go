package clock

import "time"

// Clock allows injecting time in domain/services. The location pins the
// calendar zone used for day classification, so "same day" does not depend
// on the host timezone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// NewSystem returns a clock backed by time.Now in the given zone.
// A nil location falls back to UTC.
func NewSystem(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c systemClock) Location() *time.Location {
	return c.loc
}

type fixedClock struct {
	now time.Time
	loc *time.Location
}

// NewFixed returns a clock that always returns the same instant (useful for tests).
func NewFixed(t time.Time, loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return fixedClock{now: t.In(loc), loc: loc}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func (f fixedClock) Location() *time.Location {
	return f.loc
}
