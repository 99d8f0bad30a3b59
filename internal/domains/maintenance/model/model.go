package model

import (
	"time"

	"labdesk/shared/model"
)

const (
	TableName  = "maintenance_logs"
	EntityName = "maintenance_log"

	FieldID          = "id"
	FieldEquipmentID = "equipment_id"
	FieldPerformedAt = "performed_at"
	FieldDescription = "description"
	FieldResolved    = "resolved"
)

type MaintenanceLog struct {
	ID          string    `db:"id"`
	EquipmentID string    `db:"equipment_id"`
	PerformedAt time.Time `db:"performed_at"`
	Description string    `db:"description"`
	Resolved    bool      `db:"resolved"`
	model.Metadata
}
