// Package clock abstracts the wall clock so scheduling code can be tested
// against fixed instants.
package clock

import "time"

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// Real is the system clock. Loc, when set, is applied to every reading.
type Real struct {
	Loc *time.Location
}

// Now returns time.Now in the configured location.
func (r Real) Now() time.Time {
	if r.Loc != nil {
		return time.Now().In(r.Loc)
	}
	return time.Now()
}

// Fixed always reports the same instant. Useful in tests.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Func adapts a plain function to the Clock interface.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
