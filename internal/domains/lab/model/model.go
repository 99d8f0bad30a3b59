package model

import "labdesk/shared/model"

const (
	TableName  = "labs"
	EntityName = "lab"

	FieldID          = "id"
	FieldName        = "name"
	FieldBuilding    = "building"
	FieldRoomNumber  = "room_number"
	FieldCapacity    = "capacity"
	FieldDescription = "description"
)

type Lab struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Building    string  `db:"building"`
	RoomNumber  string  `db:"room_number"`
	Capacity    int     `db:"capacity"`
	Description *string `db:"description"`
	model.Metadata
}
