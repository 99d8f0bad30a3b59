package dto

import (
	"labdesk/internal/domains/lab/model"
	"labdesk/shared"
	gDto "labdesk/shared/dto"
	gModel "labdesk/shared/model"
	"labdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateLabRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Building    string  `json:"building"    validate:"required,max=100"`
	RoomNumber  string  `json:"room_number" validate:"required,max=20"`
	Capacity    int     `json:"capacity"    validate:"required,min=1"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func (c *CreateLabRequest) ToModel(user string) model.Lab {
	return model.Lab{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Building:    c.Building,
		RoomNumber:  c.RoomNumber,
		Capacity:    c.Capacity,
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateLabRequest struct {
	Name        string  `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Building    string  `db:"building"    json:"building"    validate:"omitempty,max=100"`
	RoomNumber  string  `db:"room_number" json:"room_number" validate:"omitempty,max=20"`
	Capacity    *int    `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=1000"`
}

type LabResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Building    string  `json:"building"`
	RoomNumber  string  `json:"room_number"`
	Capacity    int     `json:"capacity"`
	Description *string `json:"description,omitempty"`
	gDto.Metadata
}

func (r *LabResponse) FromModel(mod model.Lab) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Building = mod.Building
	r.RoomNumber = mod.RoomNumber
	r.Capacity = mod.Capacity
	r.Description = mod.Description
	r.Metadata.FromModel(mod.Metadata)
}

type GetLabsResponse struct {
	Labs      []LabResponse `json:"labs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetLabsResponse) FromModels(models []model.Lab, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Labs = make([]LabResponse, len(models))
	for i, mod := range models {
		r.Labs[i].FromModel(mod)
	}
}
