package service_test

import (
	"testing"
	"time"

	"labdesk/internal/domains/report/model/dto"
	"labdesk/internal/domains/report/service"
	reservationModel "labdesk/internal/domains/reservation/model"
	"labdesk/internal/domains/reservation/status"
	"labdesk/shared/constant"
	"labdesk/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func day(d, hour, minute int) time.Time {
	return time.Date(2026, 9, d, hour, minute, 0, 0, time.UTC)
}

func confirmed(start, end time.Time) reservationModel.Reservation {
	return reservationModel.Reservation{
		StartTime: start,
		EndTime:   end,
		Status:    constant.ReservationStatusConfirmed,
	}
}

func TestAggregate(t *testing.T) {
	winStart := day(1, 0, 0)
	winEnd := day(2, 0, 0)

	tests := []struct {
		name         string
		reservations []reservationModel.Reservation
		want         service.Summary
	}{
		{
			name:         "no reservations",
			reservations: nil,
			want: service.Summary{
				UtilizedMinutes:  0,
				WindowMinutes:    1440,
				UtilizationPct:   0,
				ReservationCount: 0,
			},
		},
		{
			name: "two hours over one day",
			reservations: []reservationModel.Reservation{
				confirmed(day(1, 10, 0), day(1, 12, 0)),
			},
			want: service.Summary{
				UtilizedMinutes:  120,
				WindowMinutes:    1440,
				UtilizationPct:   8.33,
				ReservationCount: 1,
			},
		},
		{
			name: "pending and cancelled are skipped",
			reservations: []reservationModel.Reservation{
				confirmed(day(1, 10, 0), day(1, 12, 0)),
				{
					StartTime: day(1, 13, 0),
					EndTime:   day(1, 14, 0),
					Status:    constant.ReservationStatusPending,
				},
				{
					StartTime: day(1, 15, 0),
					EndTime:   day(1, 16, 0),
					Status:    constant.ReservationStatusCancelled,
				},
			},
			want: service.Summary{
				UtilizedMinutes:  120,
				WindowMinutes:    1440,
				UtilizationPct:   8.33,
				ReservationCount: 1,
			},
		},
		{
			name: "straddling reservation is clamped",
			reservations: []reservationModel.Reservation{
				confirmed(day(1, 23, 0), day(2, 1, 0)),
			},
			want: service.Summary{
				UtilizedMinutes:  60,
				WindowMinutes:    1440,
				UtilizationPct:   4.17,
				ReservationCount: 1,
			},
		},
		{
			name: "reservation entirely outside the window",
			reservations: []reservationModel.Reservation{
				confirmed(day(3, 10, 0), day(3, 11, 0)),
			},
			want: service.Summary{
				UtilizedMinutes:  0,
				WindowMinutes:    1440,
				UtilizationPct:   0,
				ReservationCount: 0,
			},
		},
		{
			name: "multiple confirmed reservations accumulate",
			reservations: []reservationModel.Reservation{
				confirmed(day(1, 9, 0), day(1, 10, 30)),
				confirmed(day(1, 14, 0), day(1, 15, 0)),
			},
			want: service.Summary{
				UtilizedMinutes:  150,
				WindowMinutes:    1440,
				UtilizationPct:   10.42,
				ReservationCount: 2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.Aggregate(winStart, winEnd, tt.reservations))
		})
	}
}

func TestTimeline(t *testing.T) {
	winStart := day(1, 0, 0)
	winEnd := day(2, 0, 0)
	now := day(1, 11, 0)

	straddling := confirmed(day(1, 23, 0), day(2, 1, 0))
	straddling.ID = "res-straddle"
	straddling.UserID = "user-2"
	straddling.Purpose = "overnight run"

	running := confirmed(day(1, 10, 0), day(1, 12, 0))
	running.ID = "res-running"
	running.UserID = "user-1"
	running.Purpose = "titration"

	pending := reservationModel.Reservation{
		ID:        "res-pending",
		UserID:    "user-3",
		Purpose:   "held slot",
		StartTime: day(1, 13, 0),
		EndTime:   day(1, 14, 0),
		Status:    constant.ReservationStatusPending,
	}

	outside := confirmed(day(3, 10, 0), day(3, 11, 0))
	outside.ID = "res-outside"

	entries := service.Timeline(winStart, winEnd, now, []reservationModel.Reservation{running, pending, straddling, outside})

	assert.Equal(t, []dto.TimelineEntry{
		{
			ReservationID: "res-running",
			UserID:        "user-1",
			Label:         "titration",
			Status:        status.ReservationInProgress,
			StartTime:     timezone.Format(day(1, 10, 0), constant.DateFormat),
			EndTime:       timezone.Format(day(1, 12, 0), constant.DateFormat),
			Minutes:       120,
		},
		{
			ReservationID: "res-pending",
			UserID:        "user-3",
			Label:         "held slot",
			Status:        constant.ReservationStatusPending,
			StartTime:     timezone.Format(day(1, 13, 0), constant.DateFormat),
			EndTime:       timezone.Format(day(1, 14, 0), constant.DateFormat),
			Minutes:       60,
		},
		{
			ReservationID: "res-straddle",
			UserID:        "user-2",
			Label:         "overnight run",
			Status:        status.ReservationConfirmed,
			StartTime:     timezone.Format(day(1, 23, 0), constant.DateFormat),
			EndTime:       timezone.Format(day(2, 0, 0), constant.DateFormat),
			Minutes:       60,
		},
	}, entries)
}

func TestBreakdownByUser(t *testing.T) {
	winStart := day(1, 0, 0)
	winEnd := day(2, 0, 0)

	first := confirmed(day(1, 9, 0), day(1, 12, 0))
	first.UserID = "user-1"

	second := confirmed(day(1, 14, 0), day(1, 15, 0))
	second.UserID = "user-2"

	third := confirmed(day(1, 16, 0), day(1, 17, 0))
	third.UserID = "user-2"

	skipped := reservationModel.Reservation{
		UserID:    "user-3",
		StartTime: day(1, 18, 0),
		EndTime:   day(1, 19, 0),
		Status:    constant.ReservationStatusCancelled,
	}

	reservations := []reservationModel.Reservation{first, second, third, skipped}
	summary := service.Aggregate(winStart, winEnd, reservations)

	rows := service.BreakdownByUser(winStart, winEnd, summary, reservations)

	assert.Equal(t, []dto.BreakdownRow{
		{SubjectID: "user-1", UtilizedMinutes: 180, PctOfUtilized: 60, PctOfWindow: 12.5},
		{SubjectID: "user-2", UtilizedMinutes: 120, PctOfUtilized: 40, PctOfWindow: 8.33},
	}, rows)
}

func TestBreakdownByEquipment(t *testing.T) {
	winStart := day(1, 0, 0)
	winEnd := day(2, 0, 0)

	shared := confirmed(day(1, 9, 0), day(1, 11, 0))
	shared.ID = "res-1"

	solo := confirmed(day(1, 14, 0), day(1, 15, 0))
	solo.ID = "res-2"

	reservations := []reservationModel.Reservation{shared, solo}
	summary := service.Aggregate(winStart, winEnd, reservations)

	links := []reservationModel.ReservationEquipment{
		{ReservationID: "res-1", EquipmentID: "eq-1"},
		{ReservationID: "res-1", EquipmentID: "eq-2"},
		{ReservationID: "res-2", EquipmentID: "eq-2"},
	}

	rows := service.BreakdownByEquipment(winStart, winEnd, summary, reservations, links)

	assert.Equal(t, []dto.BreakdownRow{
		{SubjectID: "eq-2", UtilizedMinutes: 180, PctOfUtilized: 100, PctOfWindow: 12.5},
		{SubjectID: "eq-1", UtilizedMinutes: 120, PctOfUtilized: 66.67, PctOfWindow: 8.33},
	}, rows)
}
