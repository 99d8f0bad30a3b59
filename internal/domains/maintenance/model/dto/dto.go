package dto

import (
	"github.com/google/uuid"
	"labdesk/internal/domains/maintenance/model"
	"labdesk/shared"
	"labdesk/shared/constant"
	gDto "labdesk/shared/dto"
	gModel "labdesk/shared/model"
	"labdesk/shared/timezone"
)

type CreateMaintenanceLogRequest struct {
	PerformedAt string `json:"performed_at" validate:"required"`
	Description string `json:"description"  validate:"required,max=1000"`
	Resolved    *bool  `json:"resolved"     validate:"omitempty"`
}

func (c *CreateMaintenanceLogRequest) ToModel(equipmentID, user string) (model.MaintenanceLog, error) {
	performedAt, err := timezone.Parse(constant.DateFormat, c.PerformedAt)
	if err != nil {
		return model.MaintenanceLog{}, err //nolint:wrapcheck
	}

	resolved := false
	if c.Resolved != nil {
		resolved = *c.Resolved
	}

	return model.MaintenanceLog{
		ID:          uuid.NewString(),
		EquipmentID: equipmentID,
		PerformedAt: performedAt,
		Description: c.Description,
		Resolved:    resolved,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateMaintenanceLogRequest struct {
	Description string `db:"description" json:"description" validate:"omitempty,max=1000"`
	Resolved    *bool  `db:"resolved"    json:"resolved"    validate:"omitempty"`
}

type MaintenanceLogResponse struct {
	ID          string `json:"id"`
	EquipmentID string `json:"equipment_id"`
	PerformedAt string `json:"performed_at"`
	Description string `json:"description"`
	Resolved    bool   `json:"resolved"`
	gDto.Metadata
}

func (r *MaintenanceLogResponse) FromModel(mod model.MaintenanceLog) {
	r.ID = mod.ID
	r.EquipmentID = mod.EquipmentID
	r.PerformedAt = timezone.Format(mod.PerformedAt, constant.DateFormat)
	r.Description = mod.Description
	r.Resolved = mod.Resolved
	r.Metadata.FromModel(mod.Metadata)
}

type GetMaintenanceLogsResponse struct {
	Logs      []MaintenanceLogResponse `json:"logs"`
	TotalPage int                      `json:"total_page"`
	TotalData int                      `json:"total_data"`
}

func (r *GetMaintenanceLogsResponse) FromModels(models []model.MaintenanceLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]MaintenanceLogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}
