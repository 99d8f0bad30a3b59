package clock

import (
	"time"

	"labdesk/shared/timezone"
)

// Clock abstracts the wall clock so status resolution and slot validation
// never read time.Now directly. Services take a Clock; tests inject a fixed one.
type Clock interface {
	Now() time.Time
}

type appClock struct{}

// Now returns the current instant in the application timezone.
func (appClock) Now() time.Time {
	return timezone.Now()
}

func New() Clock {
	return appClock{}
}

// Fixed is a Clock pinned to a single instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

// At returns a Clock pinned to the given instant.
func At(t time.Time) Clock {
	return Fixed{Instant: t}
}
