package dto

import (
	"labdesk/internal/domains/equipment/model"
	"labdesk/shared"
	"labdesk/shared/constant"
	gDto "labdesk/shared/dto"
	gModel "labdesk/shared/model"
	"labdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateEquipmentRequest struct {
	LabID        string  `json:"lab_id"        validate:"required,uuid"`
	Name         string  `json:"name"          validate:"required,max=100"`
	SerialNumber string  `json:"serial_number" validate:"required,max=100"`
	Category     string  `json:"category"      validate:"required,max=100"`
	Description  *string `json:"description"   validate:"omitempty,max=1000"`
}

func (c *CreateEquipmentRequest) ToModel(user string) model.Equipment {
	return model.Equipment{
		ID:           uuid.NewString(),
		LabID:        c.LabID,
		Name:         c.Name,
		SerialNumber: c.SerialNumber,
		Category:     c.Category,
		Status:       constant.EquipmentStatusOperational,
		Description:  c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateEquipmentRequest struct {
	LabID       string  `db:"lab_id"      json:"lab_id"      validate:"omitempty,uuid"`
	Name        string  `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Category    string  `db:"category"    json:"category"    validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=1000"`
}

// SetEquipmentStatusRequest changes the stored operational state. The
// reservation overlay (available versus in use) is computed, never set.
type SetEquipmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=operational maintenance out_of_order"`
}

type EquipmentResponse struct {
	ID              string  `json:"id"`
	LabID           string  `json:"lab_id"`
	Name            string  `json:"name"`
	SerialNumber    string  `json:"serial_number"`
	Category        string  `json:"category"`
	Status          string  `json:"status"`
	EffectiveStatus string  `json:"effective_status,omitempty"`
	Description     *string `json:"description,omitempty"`
	gDto.Metadata
}

func (r *EquipmentResponse) FromModel(mod model.Equipment) {
	r.ID = mod.ID
	r.LabID = mod.LabID
	r.Name = mod.Name
	r.SerialNumber = mod.SerialNumber
	r.Category = mod.Category
	r.Status = mod.Status
	r.Description = mod.Description
	r.Metadata.FromModel(mod.Metadata)
}

type GetEquipmentResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
	TotalPage int                 `json:"total_page"`
	TotalData int                 `json:"total_data"`
}

func (r *GetEquipmentResponse) FromModels(models []model.Equipment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Equipment = make([]EquipmentResponse, len(models))
	for i, mod := range models {
		r.Equipment[i].FromModel(mod)
	}
}

type EquipmentStatusResponse struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	AsOf            string `json:"as_of"`
}
