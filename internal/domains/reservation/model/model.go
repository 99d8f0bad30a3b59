package model

import (
	"time"

	"labdesk/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID        = "id"
	FieldLabID     = "lab_id"
	FieldUserID    = "user_id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldPurpose   = "purpose"
	FieldNotes     = "notes"
	FieldStatus    = "status"
)

const (
	LinkTableName = "reservation_equipment"

	LinkFieldReservationID = "reservation_id"
	LinkFieldEquipmentID   = "equipment_id"
)

// Reservation is the stored record. Status only ever holds pending,
// confirmed or cancelled; completion is computed from the window on read.
type Reservation struct {
	ID        string    `db:"id"`
	LabID     string    `db:"lab_id"`
	UserID    string    `db:"user_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Purpose   string    `db:"purpose"`
	Notes     *string   `db:"notes"`
	Status    string    `db:"status"`
	model.Metadata
}

// ReservationEquipment links a reservation to one equipment item. All
// equipment linked to a reservation belongs to the reservation's lab.
type ReservationEquipment struct {
	ReservationID string `db:"reservation_id"`
	EquipmentID   string `db:"equipment_id"`
}

// EquipmentWindow is a reservation window joined with one linked equipment
// item, used for effective equipment status and per-equipment reporting.
type EquipmentWindow struct {
	EquipmentID string    `db:"equipment_id"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
}
