package service_test

import (
	"context"
	"net/http"
	"testing"

	"labdesk/config"
	"labdesk/infras/otel/mocks"
	equipmentMocks "labdesk/internal/domains/equipment/mocks"
	maintenanceMocks "labdesk/internal/domains/maintenance/mocks"
	"labdesk/internal/domains/maintenance/model/dto"
	"labdesk/internal/domains/maintenance/service"
	"labdesk/shared/constant"
	"labdesk/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo          *maintenanceMocks.MockMaintenanceLog
	equipmentRepo *equipmentMocks.MockEquipment
	service       service.MaintenanceLog
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	mockRepo := maintenanceMocks.NewMockMaintenanceLog(ctrl)
	mockEquipmentRepo := equipmentMocks.NewMockEquipment(ctrl)
	mockOtel := mocks.NewOtel()

	return fixture{
		repo:          mockRepo,
		equipmentRepo: mockEquipmentRepo,
		service:       service.New(mockRepo, mockEquipmentRepo, &config.Config{}, mockOtel),
	}
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "instructor-1")
}

func TestCreateMaintenanceLog(t *testing.T) {
	validReq := dto.CreateMaintenanceLogRequest{
		PerformedAt: "2026-08-20T09:00:00Z",
		Description: "replaced heating block",
	}

	tests := []struct {
		name      string
		req       dto.CreateMaintenanceLogRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			req:  validReq,
			setupMock: func(f fixture) {
				f.equipmentRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "equipment not found",
			req:  validReq,
			setupMock: func(f fixture) {
				f.equipmentRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "malformed performed_at",
			req: dto.CreateMaintenanceLogRequest{
				PerformedAt: "last week",
				Description: "replaced heating block",
			},
			setupMock: func(f fixture) {
				f.equipmentRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Create(testContext(), tt.req, "eq-1")

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateMaintenanceLog(t *testing.T) {
	resolved := true

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "log not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Update(testContext(), dto.UpdateMaintenanceLogRequest{Resolved: &resolved}, "log-1")

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
