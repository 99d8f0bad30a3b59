// Package status derives the effective status of reservations and equipment
// from stored state and the current instant. Effective statuses are never
// persisted; they are recomputed on every read so they cannot drift from the
// underlying timestamps.
package status

import (
	"time"

	"labdesk/shared/constant"
)

// Effective reservation statuses. Pending and cancelled pass through from
// storage; the other three are derived from the window and the clock.
const (
	ReservationPending    = constant.ReservationStatusPending
	ReservationConfirmed  = constant.ReservationStatusConfirmed
	ReservationCancelled  = constant.ReservationStatusCancelled
	ReservationInProgress = "in_progress"
	ReservationCompleted  = "completed"
)

// Effective equipment statuses. Maintenance and out-of-order pass through
// from storage; operational resolves to in-use or available.
const (
	EquipmentAvailable   = "available"
	EquipmentInUse       = "in_use"
	EquipmentMaintenance = constant.EquipmentStatusMaintenance
	EquipmentOutOfOrder  = constant.EquipmentStatusOutOfOrder
)

// Window is a confirmed reservation's [start,end) pair.
type Window struct {
	Start time.Time
	End   time.Time
}

// contains is the single containment predicate both resolvers share:
// start <= now < end. At now == end a reservation is already completed and
// its equipment already available. This is intentionally not the half-open
// overlap test used by conflict detection (timegrid.Overlaps); the two
// conventions differ at exact boundary instants and must stay separate.
func contains(w Window, now time.Time) bool {
	return !now.Before(w.Start) && now.Before(w.End)
}

// ResolveReservation maps a stored reservation status plus its window and the
// current instant to the effective status. Pure and deterministic given now.
func ResolveReservation(stored string, start, end, now time.Time) string {
	switch stored {
	case ReservationPending, ReservationCancelled:
		return stored
	case ReservationConfirmed:
		if now.Before(start) {
			return ReservationConfirmed
		}

		if contains(Window{Start: start, End: end}, now) {
			return ReservationInProgress
		}

		return ReservationCompleted
	default:
		return stored
	}
}

// ResolveEquipment maps a stored equipment status plus the confirmed
// reservation windows linked to it to the effective status. Windows whose
// reservations are pending or cancelled must not be passed in.
func ResolveEquipment(stored string, windows []Window, now time.Time) string {
	switch stored {
	case constant.EquipmentStatusMaintenance:
		return EquipmentMaintenance
	case constant.EquipmentStatusOutOfOrder:
		return EquipmentOutOfOrder
	case constant.EquipmentStatusOperational:
		for _, w := range windows {
			if contains(w, now) {
				return EquipmentInUse
			}
		}

		return EquipmentAvailable
	default:
		return stored
	}
}
