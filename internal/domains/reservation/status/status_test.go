package status_test

import (
	"testing"
	"time"

	"labdesk/internal/domains/reservation/status"
	"labdesk/shared/constant"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func TestResolveReservation(t *testing.T) {
	start := at(10, 0)
	end := at(12, 0)

	tests := []struct {
		name   string
		stored string
		now    time.Time
		want   string
	}{
		{
			name:   "pending passes through before the window",
			stored: constant.ReservationStatusPending,
			now:    at(9, 0),
			want:   status.ReservationPending,
		},
		{
			name:   "pending passes through inside the window",
			stored: constant.ReservationStatusPending,
			now:    at(11, 0),
			want:   status.ReservationPending,
		},
		{
			name:   "cancelled passes through after the window",
			stored: constant.ReservationStatusCancelled,
			now:    at(13, 0),
			want:   status.ReservationCancelled,
		},
		{
			name:   "confirmed before the window",
			stored: constant.ReservationStatusConfirmed,
			now:    at(9, 0),
			want:   status.ReservationConfirmed,
		},
		{
			name:   "confirmed at the exact start is in progress",
			stored: constant.ReservationStatusConfirmed,
			now:    start,
			want:   status.ReservationInProgress,
		},
		{
			name:   "confirmed inside the window",
			stored: constant.ReservationStatusConfirmed,
			now:    at(11, 0),
			want:   status.ReservationInProgress,
		},
		{
			name:   "confirmed at the exact end is completed",
			stored: constant.ReservationStatusConfirmed,
			now:    end,
			want:   status.ReservationCompleted,
		},
		{
			name:   "confirmed after the window",
			stored: constant.ReservationStatusConfirmed,
			now:    at(13, 0),
			want:   status.ReservationCompleted,
		},
		{
			name:   "unknown stored status passes through",
			stored: "archived",
			now:    at(11, 0),
			want:   "archived",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.ResolveReservation(tt.stored, start, end, tt.now))
		})
	}
}

func TestResolveEquipment(t *testing.T) {
	windows := []status.Window{
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(14, 0), End: at(16, 0)},
	}

	tests := []struct {
		name    string
		stored  string
		windows []status.Window
		now     time.Time
		want    string
	}{
		{
			name:    "operational with no windows",
			stored:  constant.EquipmentStatusOperational,
			windows: nil,
			now:     at(9, 30),
			want:    status.EquipmentAvailable,
		},
		{
			name:    "operational inside a window is in use",
			stored:  constant.EquipmentStatusOperational,
			windows: windows,
			now:     at(9, 30),
			want:    status.EquipmentInUse,
		},
		{
			name:    "operational between windows is available",
			stored:  constant.EquipmentStatusOperational,
			windows: windows,
			now:     at(12, 0),
			want:    status.EquipmentAvailable,
		},
		{
			name:    "operational at a window start is in use",
			stored:  constant.EquipmentStatusOperational,
			windows: windows,
			now:     at(14, 0),
			want:    status.EquipmentInUse,
		},
		{
			name:    "operational at a window end is available",
			stored:  constant.EquipmentStatusOperational,
			windows: windows,
			now:     at(10, 0),
			want:    status.EquipmentAvailable,
		},
		{
			name:    "maintenance overrides an active window",
			stored:  constant.EquipmentStatusMaintenance,
			windows: windows,
			now:     at(9, 30),
			want:    status.EquipmentMaintenance,
		},
		{
			name:    "out of order overrides an active window",
			stored:  constant.EquipmentStatusOutOfOrder,
			windows: windows,
			now:     at(9, 30),
			want:    status.EquipmentOutOfOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.ResolveEquipment(tt.stored, tt.windows, tt.now))
		})
	}
}
