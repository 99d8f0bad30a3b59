package model

import "labdesk/shared/model"

const (
	TableName  = "equipment"
	EntityName = "equipment"

	FieldID           = "id"
	FieldLabID        = "lab_id"
	FieldName         = "name"
	FieldSerialNumber = "serial_number"
	FieldCategory     = "category"
	FieldStatus       = "status"
	FieldDescription  = "description"
)

type Equipment struct {
	ID           string  `db:"id"`
	LabID        string  `db:"lab_id"`
	Name         string  `db:"name"`
	SerialNumber string  `db:"serial_number"`
	Category     string  `db:"category"`
	Status       string  `db:"status"`
	Description  *string `db:"description"`
	model.Metadata
}
