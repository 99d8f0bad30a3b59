package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"labdesk/config"
	"labdesk/infras/otel/mocks"
	equipmentMocks "labdesk/internal/domains/equipment/mocks"
	labMocks "labdesk/internal/domains/lab/mocks"
	"labdesk/internal/domains/report/model/dto"
	"labdesk/internal/domains/report/service"
	reservationMocks "labdesk/internal/domains/reservation/mocks"
	reservationModel "labdesk/internal/domains/reservation/model"
	"labdesk/internal/domains/reservation/status"
	userMocks "labdesk/internal/domains/user/mocks"
	"labdesk/shared/clock"
	"labdesk/shared/constant"
	"labdesk/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

type fixture struct {
	reservationRepo *reservationMocks.MockReservation
	labRepo         *labMocks.MockLab
	equipmentRepo   *equipmentMocks.MockEquipment
	userRepo        *userMocks.MockUser
	service         service.Report
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockLabRepo := labMocks.NewMockLab(ctrl)
	mockEquipmentRepo := equipmentMocks.NewMockEquipment(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	return fixture{
		reservationRepo: mockReservationRepo,
		labRepo:         mockLabRepo,
		equipmentRepo:   mockEquipmentRepo,
		userRepo:        mockUserRepo,
		service:         service.New(mockReservationRepo, mockLabRepo, mockEquipmentRepo, mockUserRepo, &config.Config{}, mockOtel, clock.At(fixedNow)),
	}
}

func TestLabUtilization(t *testing.T) {
	weekAgo := fixedNow.AddDate(0, 0, -constant.DefaultReportDays)

	tests := []struct {
		name      string
		days      int
		setupMock func(f fixture)
		wantCode  int
		wantPct   float64
		wantCount int
	}{
		{
			name: "default window with one confirmed reservation",
			days: 0,
			setupMock: func(f fixture) {
				f.labRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.reservationRepo.EXPECT().
					GetInWindowByLab(gomock.Any(), "lab-1", weekAgo, fixedNow).
					Return([]reservationModel.Reservation{
						{
							ID:        "res-1",
							UserID:    "user-1",
							Purpose:   "calibration",
							StartTime: fixedNow.Add(-26 * time.Hour),
							EndTime:   fixedNow.Add(-24 * time.Hour),
							Status:    constant.ReservationStatusConfirmed,
						},
					}, nil)
				f.reservationRepo.EXPECT().
					GetEquipmentLinks(gomock.Any(), []string{"res-1"}).
					Return([]reservationModel.ReservationEquipment{
						{ReservationID: "res-1", EquipmentID: "eq-1"},
					}, nil)
			},
			wantPct:   1.19,
			wantCount: 1,
		},
		{
			name: "lab not found",
			days: 0,
			setupMock: func(f fixture) {
				f.labRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "days beyond the cap",
			days: constant.MaxReportDays + 1,
			setupMock: func(f fixture) {
				f.labRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "negative days",
			days: -1,
			setupMock: func(f fixture) {
				f.labRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.service.LabUtilization(context.Background(), "lab-1", tt.days)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "lab-1", res.SubjectID)
			assert.Equal(t, 120, res.UtilizedMinutes)
			assert.Equal(t, constant.DefaultReportDays*24*60, res.WindowMinutes)
			assert.Equal(t, tt.wantPct, res.UtilizationPct)
			assert.Equal(t, tt.wantCount, res.ReservationCount)

			if assert.Len(t, res.Timeline, 1) {
				assert.Equal(t, "res-1", res.Timeline[0].ReservationID)
				assert.Equal(t, "user-1", res.Timeline[0].UserID)
				assert.Equal(t, "calibration", res.Timeline[0].Label)
				assert.Equal(t, status.ReservationCompleted, res.Timeline[0].Status)
				assert.Equal(t, 120, res.Timeline[0].Minutes)
			}

			assert.Equal(t, []dto.BreakdownRow{
				{SubjectID: "user-1", UtilizedMinutes: 120, PctOfUtilized: 100, PctOfWindow: 1.19},
			}, res.ByUser)
			assert.Equal(t, []dto.BreakdownRow{
				{SubjectID: "eq-1", UtilizedMinutes: 120, PctOfUtilized: 100, PctOfWindow: 1.19},
			}, res.ByEquipment)
		})
	}
}

func TestEquipmentUtilization(t *testing.T) {
	f := newFixture(t)

	winStart := fixedNow.AddDate(0, 0, -1)

	f.equipmentRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.reservationRepo.EXPECT().
		GetInWindowByEquipment(gomock.Any(), "eq-1", winStart, fixedNow).
		Return([]reservationModel.Reservation{
			{
				ID:        "res-pending",
				UserID:    "user-2",
				StartTime: fixedNow.Add(-5 * time.Hour),
				EndTime:   fixedNow.Add(-4 * time.Hour),
				Status:    constant.ReservationStatusPending,
			},
			{
				ID:        "res-confirmed",
				UserID:    "user-1",
				StartTime: fixedNow.Add(-2 * time.Hour),
				EndTime:   fixedNow.Add(-1 * time.Hour),
				Status:    constant.ReservationStatusConfirmed,
			},
		}, nil)
	f.reservationRepo.EXPECT().
		GetEquipmentLinks(gomock.Any(), []string{"res-pending", "res-confirmed"}).
		Return([]reservationModel.ReservationEquipment{
			{ReservationID: "res-pending", EquipmentID: "eq-1"},
			{ReservationID: "res-confirmed", EquipmentID: "eq-1"},
		}, nil)

	res, err := f.service.EquipmentUtilization(context.Background(), "eq-1", 1)

	assert.NoError(t, err)
	assert.Equal(t, 60, res.UtilizedMinutes)
	assert.Equal(t, 1440, res.WindowMinutes)
	assert.Equal(t, 4.17, res.UtilizationPct)
	assert.Equal(t, 1, res.ReservationCount)

	// Both rows show on the timeline; only the confirmed one contributes to
	// the breakdowns.
	if assert.Len(t, res.Timeline, 2) {
		assert.Equal(t, constant.ReservationStatusPending, res.Timeline[0].Status)
		assert.Equal(t, status.ReservationCompleted, res.Timeline[1].Status)
	}

	assert.Equal(t, []dto.BreakdownRow{
		{SubjectID: "user-1", UtilizedMinutes: 60, PctOfUtilized: 100, PctOfWindow: 4.17},
	}, res.ByUser)
	assert.Equal(t, []dto.BreakdownRow{
		{SubjectID: "eq-1", UtilizedMinutes: 60, PctOfUtilized: 100, PctOfWindow: 4.17},
	}, res.ByEquipment)
}

func TestUserUtilization(t *testing.T) {
	f := newFixture(t)

	f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := f.service.UserUtilization(context.Background(), "user-1", 7)

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
