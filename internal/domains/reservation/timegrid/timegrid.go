package timegrid

import (
	"time"

	"labdesk/shared/constant"
	"labdesk/shared/failure"
)

// MaxDuration is the longest window a single reservation may cover.
const MaxDuration = constant.MaxReservationHours * time.Hour

// Aligned reports whether t sits exactly on the reservation grid: its minute
// component is a multiple of the slot size and it carries no seconds or
// sub-second part.
func Aligned(t time.Time) bool {
	return t.Minute()%constant.SlotGridMinutes == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// ValidateSlot checks a candidate reservation window against the grid rules,
// in order: both endpoints grid-aligned, end strictly after start, duration at
// most MaxDuration, start strictly in the future. The first violated rule is
// returned as a bad-request failure.
func ValidateSlot(start, end, now time.Time) error {
	if !Aligned(start) || !Aligned(end) {
		return failure.BadRequestFromString("start and end must align to the 15-minute grid") //nolint:wrapcheck
	}

	if !end.After(start) {
		return failure.BadRequestFromString("end must be after start") //nolint:wrapcheck
	}

	if end.Sub(start) > MaxDuration {
		return failure.BadRequestFromString("reservation may not exceed 8 hours") //nolint:wrapcheck
	}

	if !start.After(now) {
		return failure.BadRequestFromString("start must be in the future") //nolint:wrapcheck
	}

	return nil
}

// Overlaps applies the half-open interval test: [aStart,aEnd) and
// [bStart,bEnd) overlap iff aStart < bEnd and bStart < aEnd. Windows that
// merely touch do not overlap. Status resolution deliberately uses a
// different, closed-end predicate (see the status package); do not unify them.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Clamp trims [start,end) to the reporting window [winStart,winEnd]. The
// second return is false when the clamped interval is empty; callers drop
// such intervals rather than emitting zero-width segments.
func Clamp(start, end, winStart, winEnd time.Time) (time.Time, time.Time, bool) {
	if start.Before(winStart) {
		start = winStart
	}

	if end.After(winEnd) {
		end = winEnd
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}
