package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"labdesk/config"
	"labdesk/infras/otel/mocks"
	equipmentMocks "labdesk/internal/domains/equipment/mocks"
	"labdesk/internal/domains/equipment/model"
	"labdesk/internal/domains/equipment/model/dto"
	"labdesk/internal/domains/equipment/service"
	labMocks "labdesk/internal/domains/lab/mocks"
	reservationMocks "labdesk/internal/domains/reservation/mocks"
	reservationModel "labdesk/internal/domains/reservation/model"
	"labdesk/internal/domains/reservation/status"
	cacheMocks "labdesk/shared/cache/mocks"
	"labdesk/shared/clock"
	"labdesk/shared/constant"
	"labdesk/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

type fixture struct {
	repo            *equipmentMocks.MockEquipment
	labRepo         *labMocks.MockLab
	reservationRepo *reservationMocks.MockReservation
	service         service.Equipment
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	mockRepo := equipmentMocks.NewMockEquipment(ctrl)
	mockLabRepo := labMocks.NewMockLab(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.NotFound("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixture{
		repo:            mockRepo,
		labRepo:         mockLabRepo,
		reservationRepo: mockReservationRepo,
		service:         service.New(mockRepo, mockLabRepo, mockReservationRepo, &config.Config{}, mockCache, mockOtel, clock.At(fixedNow)),
	}
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func storedEquipment(stored string) model.Equipment {
	return model.Equipment{
		ID:           "eq-1",
		LabID:        "lab-1",
		Name:         "Thermal Cycler",
		SerialNumber: "TC-0042",
		Category:     "pcr",
		Status:       stored,
	}
}

func TestCreateEquipment(t *testing.T) {
	req := dto.CreateEquipmentRequest{
		LabID:        "lab-1",
		Name:         "Thermal Cycler",
		SerialNumber: "TC-0042",
		Category:     "pcr",
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(f fixture) {
				f.labRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "lab not found",
			setupMock: func(f fixture) {
				f.labRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "serial number already taken",
			setupMock: func(f fixture) {
				f.labRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Create(testContext(), req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEquipmentStatus(t *testing.T) {
	activeWindow := []reservationModel.EquipmentWindow{
		{
			EquipmentID: "eq-1",
			StartTime:   fixedNow.Add(-30 * time.Minute),
			EndTime:     fixedNow.Add(30 * time.Minute),
		},
	}

	tests := []struct {
		name          string
		stored        string
		setupMock     func(f fixture)
		wantEffective string
	}{
		{
			name:   "operational with an active confirmed window is in use",
			stored: constant.EquipmentStatusOperational,
			setupMock: func(f fixture) {
				f.reservationRepo.EXPECT().
					GetConfirmedWindows(gomock.Any(), []string{"eq-1"}, fixedNow).
					Return(activeWindow, nil)
			},
			wantEffective: status.EquipmentInUse,
		},
		{
			name:   "operational with no windows is available",
			stored: constant.EquipmentStatusOperational,
			setupMock: func(f fixture) {
				f.reservationRepo.EXPECT().
					GetConfirmedWindows(gomock.Any(), []string{"eq-1"}, fixedNow).
					Return(nil, nil)
			},
			wantEffective: status.EquipmentAvailable,
		},
		{
			name:   "maintenance overrides the reservation overlay",
			stored: constant.EquipmentStatusMaintenance,
			setupMock: func(f fixture) {
				f.reservationRepo.EXPECT().
					GetConfirmedWindows(gomock.Any(), []string{"eq-1"}, fixedNow).
					Return(activeWindow, nil)
			},
			wantEffective: status.EquipmentMaintenance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedEquipment(tt.stored), nil)
			tt.setupMock(f)

			res, err := f.service.Status(testContext(), "eq-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.stored, res.Status)
			assert.Equal(t, tt.wantEffective, res.EffectiveStatus)
		})
	}
}

func TestUpdateEquipment(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateEquipmentRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "rename without moving labs",
			req:  dto.UpdateEquipmentRequest{Name: "Thermal Cycler II"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedEquipment(constant.EquipmentStatusOperational), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "move to another lab without active reservations",
			req:  dto.UpdateEquipmentRequest{LabID: "lab-2"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedEquipment(constant.EquipmentStatusOperational), nil)
				f.labRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.reservationRepo.EXPECT().HasActiveLinks(gomock.Any(), "eq-1").Return(false, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "move blocked by active reservations",
			req:  dto.UpdateEquipmentRequest{LabID: "lab-2"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedEquipment(constant.EquipmentStatusOperational), nil)
				f.labRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.reservationRepo.EXPECT().HasActiveLinks(gomock.Any(), "eq-1").Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "move to a missing lab",
			req:  dto.UpdateEquipmentRequest{LabID: "lab-9"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedEquipment(constant.EquipmentStatusOperational), nil)
				f.labRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "equipment not found",
			req:  dto.UpdateEquipmentRequest{Name: "Thermal Cycler II"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Equipment{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Update(testContext(), tt.req, "eq-1")

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeleteEquipment(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.reservationRepo.EXPECT().HasActiveLinks(gomock.Any(), "eq-1").Return(false, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "equipment not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "blocked by active reservations",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.reservationRepo.EXPECT().HasActiveLinks(gomock.Any(), "eq-1").Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Delete(testContext(), "eq-1")

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
