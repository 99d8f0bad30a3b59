package dto

import (
	"time"

	"labdesk/internal/domains/reservation/model"
	"labdesk/internal/domains/reservation/status"
	"labdesk/shared"
	"labdesk/shared/constant"
	gDto "labdesk/shared/dto"
	gModel "labdesk/shared/model"
	"labdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	EquipmentIDs []string `json:"equipment_ids" validate:"required,min=1,dive,required"`
	StartTime    string   `json:"start_time"    validate:"required"`
	EndTime      string   `json:"end_time"      validate:"required"`
	Purpose      string   `json:"purpose"       validate:"required,max=255"`
	Notes        *string  `json:"notes"         validate:"omitempty,max=1000"`
}

// ToModel parses the window and builds the stored record. The lab is filled
// in by the service once the equipment rows have been resolved. New
// reservations always start pending, whoever creates them.
func (c *CreateReservationRequest) ToModel(user string) (model.Reservation, error) {
	startTime, err := timezone.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return model.Reservation{}, err //nolint:wrapcheck
	}

	endTime, err := timezone.Parse(constant.DateFormat, c.EndTime)
	if err != nil {
		return model.Reservation{}, err //nolint:wrapcheck
	}

	return model.Reservation{
		ID:        uuid.NewString(),
		UserID:    user,
		StartTime: startTime,
		EndTime:   endTime,
		Purpose:   c.Purpose,
		Notes:     c.Notes,
		Status:    constant.ReservationStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// UpdateReservationRequest covers the only mutable free-text fields. The
// window and equipment set are fixed at creation; status moves through the
// confirm/cancel transitions only.
type UpdateReservationRequest struct {
	Purpose string  `db:"purpose" json:"purpose" validate:"omitempty,max=255"`
	Notes   *string `db:"notes"   json:"notes"   validate:"omitempty,max=1000"`
}

type ReservationResponse struct {
	ID              string   `json:"id"`
	LabID           string   `json:"lab_id"`
	UserID          string   `json:"user_id"`
	EquipmentIDs    []string `json:"equipment_ids,omitempty"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	Purpose         string   `json:"purpose"`
	Notes           *string  `json:"notes,omitempty"`
	Status          string   `json:"status"`
	EffectiveStatus string   `json:"effective_status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(mod model.Reservation, now time.Time) {
	r.ID = mod.ID
	r.LabID = mod.LabID
	r.UserID = mod.UserID
	r.StartTime = timezone.Format(mod.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(mod.EndTime, constant.DateFormat)
	r.Purpose = mod.Purpose
	r.Notes = mod.Notes
	r.Status = mod.Status
	r.EffectiveStatus = status.ResolveReservation(mod.Status, mod.StartTime, mod.EndTime, now)
	r.Metadata.FromModel(mod.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, now time.Time, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod, now)
	}
}
