package permissions

import (
	"labdesk/shared/constant"
)

// Actor is the authenticated principal performing an operation, as carried in
// the request context.
type Actor struct {
	ID   string
	Role string
}

// CanConfirm decides who may approve a pending reservation. Instructors may
// confirm reservations they do not own; administrators may confirm any
// reservation, their own included. The admin self-approval allowance is
// deliberate; do not extend it to instructors.
func CanConfirm(actor Actor, ownerID string) bool {
	switch actor.Role {
	case constant.RoleAdmin:
		return true
	case constant.RoleInstructor:
		return actor.ID != ownerID
	default:
		return false
	}
}

// CanCancel decides who may cancel a reservation: its owner, an
// administrator, or an instructor acting on someone else's booking.
func CanCancel(actor Actor, ownerID string) bool {
	if actor.ID == ownerID {
		return true
	}

	return actor.Role == constant.RoleAdmin || actor.Role == constant.RoleInstructor
}

// CanEditReservation limits free-text edits to the owner and administrators.
func CanEditReservation(actor Actor, ownerID string) bool {
	return actor.ID == ownerID || actor.Role == constant.RoleAdmin
}

// CanSetEquipmentStatus limits operational status changes to staff.
func CanSetEquipmentStatus(actor Actor) bool {
	return actor.Role == constant.RoleAdmin || actor.Role == constant.RoleInstructor
}

// CanManageCatalog limits lab and equipment CRUD to staff.
func CanManageCatalog(actor Actor) bool {
	return actor.Role == constant.RoleAdmin || actor.Role == constant.RoleInstructor
}
