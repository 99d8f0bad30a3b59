package service_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"labdesk/config"
	"labdesk/infras/otel/mocks"
	equipmentMocks "labdesk/internal/domains/equipment/mocks"
	equipmentModel "labdesk/internal/domains/equipment/model"
	reservationMocks "labdesk/internal/domains/reservation/mocks"
	"labdesk/internal/domains/reservation/model"
	"labdesk/internal/domains/reservation/model/dto"
	"labdesk/internal/domains/reservation/service"
	cacheMocks "labdesk/shared/cache/mocks"
	"labdesk/shared/clock"
	"labdesk/shared/constant"
	"labdesk/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	repo          *reservationMocks.MockReservation
	equipmentRepo *equipmentMocks.MockEquipment
	service       service.Reservation
}

func newFixture(t *testing.T) fixture {
	return newFixtureWithPolicy(t, true)
}

func newFixtureWithPolicy(t *testing.T, labExclusive bool) fixture {
	ctrl := gomock.NewController(t)

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockEquipmentRepo := equipmentMocks.NewMockEquipment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.NotFound("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.App.Policy.LabExclusiveBooking = labExclusive

	return fixture{
		repo:          mockRepo,
		equipmentRepo: mockEquipmentRepo,
		service:       service.New(mockRepo, mockEquipmentRepo, cfg, mockCache, mockOtel, clock.At(fixedNow), nil),
	}
}

func actorContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func equipmentRows(labID string, ids ...string) []equipmentModel.Equipment {
	rows := make([]equipmentModel.Equipment, len(ids))
	for i, id := range ids {
		rows[i] = equipmentModel.Equipment{ID: id, LabID: labID}
	}

	return rows
}

func storedReservation(id, ownerID, status string) model.Reservation {
	return model.Reservation{
		ID:        id,
		LabID:     "lab-1",
		UserID:    ownerID,
		StartTime: fixedNow.Add(2 * time.Hour),
		EndTime:   fixedNow.Add(4 * time.Hour),
		Purpose:   "thermal cycling",
		Status:    status,
	}
}

func TestCreateReservation(t *testing.T) {
	validReq := dto.CreateReservationRequest{
		EquipmentIDs: []string{"eq-1", "eq-2"},
		StartTime:    "2026-09-01T10:00:00Z",
		EndTime:      "2026-09-01T12:00:00Z",
		Purpose:      "thermal cycling",
	}

	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			req:  validReq,
			setupMock: func(f fixture) {
				f.equipmentRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(equipmentRows("lab-1", "eq-1", "eq-2"), nil)
				f.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), []string{"eq-1", "eq-2"}, true).
					Return(nil)
			},
		},
		{
			name: "malformed timestamp",
			req: dto.CreateReservationRequest{
				EquipmentIDs: []string{"eq-1"},
				StartTime:    "next tuesday",
				EndTime:      "2026-09-01T12:00:00Z",
				Purpose:      "thermal cycling",
			},
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "start off the grid",
			req: dto.CreateReservationRequest{
				EquipmentIDs: []string{"eq-1"},
				StartTime:    "2026-09-01T10:05:00Z",
				EndTime:      "2026-09-01T12:00:00Z",
				Purpose:      "thermal cycling",
			},
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "start in the past",
			req: dto.CreateReservationRequest{
				EquipmentIDs: []string{"eq-1"},
				StartTime:    "2026-09-01T07:00:00Z",
				EndTime:      "2026-09-01T08:00:00Z",
				Purpose:      "thermal cycling",
			},
			setupMock: func(f fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown equipment",
			req:  validReq,
			setupMock: func(f fixture) {
				f.equipmentRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(equipmentRows("lab-1", "eq-1"), nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "equipment from different labs",
			req:  validReq,
			setupMock: func(f fixture) {
				rows := equipmentRows("lab-1", "eq-1")
				rows = append(rows, equipmentRows("lab-2", "eq-2")...)

				f.equipmentRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(rows, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "window conflicts with an existing reservation",
			req:  validReq,
			setupMock: func(f fixture) {
				f.equipmentRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(equipmentRows("lab-1", "eq-1", "eq-2"), nil)
				f.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(failure.Conflict("requested window conflicts with an existing reservation"))
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := actorContext("student-1", constant.RoleStudent)

			res, err := f.service.Create(ctx, tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "lab-1", res.LabID)
			assert.Equal(t, "student-1", res.UserID)
			assert.Equal(t, []string{"eq-1", "eq-2"}, res.EquipmentIDs)
			assert.Equal(t, constant.ReservationStatusPending, res.Status)
			assert.Equal(t, constant.ReservationStatusPending, res.EffectiveStatus)
		})
	}
}

// The lab-exclusive toggle must reach the repository untouched: with the
// policy disabled the conflict check narrows to the requested equipment.
func TestCreateReservationLabPolicyDisabled(t *testing.T) {
	f := newFixtureWithPolicy(t, false)

	f.equipmentRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(equipmentRows("lab-1", "eq-1"), nil)
	f.repo.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), []string{"eq-1"}, false).
		Return(nil)

	res, err := f.service.Create(actorContext("student-1", constant.RoleStudent), dto.CreateReservationRequest{
		EquipmentIDs: []string{"eq-1"},
		StartTime:    "2026-09-01T10:00:00Z",
		EndTime:      "2026-09-01T12:00:00Z",
		Purpose:      "thermal cycling",
	})

	assert.NoError(t, err)
	assert.Equal(t, constant.ReservationStatusPending, res.Status)
}

func TestConfirmReservation(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "instructor confirms another user's reservation",
			ctx:  actorContext("instructor-1", constant.RoleInstructor),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedReservation("res-1", "student-1", constant.ReservationStatusPending), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "admin confirms their own reservation",
			ctx:  actorContext("admin-1", constant.RoleAdmin),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedReservation("res-1", "admin-1", constant.ReservationStatusPending), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "instructor cannot confirm their own reservation",
			ctx:  actorContext("instructor-1", constant.RoleInstructor),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedReservation("res-1", "instructor-1", constant.ReservationStatusPending), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "student cannot confirm",
			ctx:  actorContext("student-2", constant.RoleStudent),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedReservation("res-1", "student-1", constant.ReservationStatusPending), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "already confirmed",
			ctx:  actorContext("admin-1", constant.RoleAdmin),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedReservation("res-1", "student-1", constant.ReservationStatusConfirmed), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "cancelled reservations cannot be confirmed",
			ctx:  actorContext("admin-1", constant.RoleAdmin),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedReservation("res-1", "student-1", constant.ReservationStatusCancelled), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "window already elapsed",
			ctx:  actorContext("admin-1", constant.RoleAdmin),
			setupMock: func(f fixture) {
				elapsed := storedReservation("res-1", "student-1", constant.ReservationStatusPending)
				elapsed.StartTime = fixedNow.Add(-4 * time.Hour)
				elapsed.EndTime = fixedNow.Add(-2 * time.Hour)

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(elapsed, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "reservation not found",
			ctx:  actorContext("admin-1", constant.RoleAdmin),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Confirm(tt.ctx, "res-1")

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCancelReservation(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "owner cancels their own reservation",
			ctx:  actorContext("student-1", constant.RoleStudent),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedReservation("res-1", "student-1", constant.ReservationStatusPending), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "instructor cancels another user's confirmed reservation",
			ctx:  actorContext("instructor-1", constant.RoleInstructor),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedReservation("res-1", "student-1", constant.ReservationStatusConfirmed), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "student cannot cancel someone else's reservation",
			ctx:  actorContext("student-2", constant.RoleStudent),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedReservation("res-1", "student-1", constant.ReservationStatusPending), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "already cancelled",
			ctx:  actorContext("student-1", constant.RoleStudent),
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedReservation("res-1", "student-1", constant.ReservationStatusCancelled), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "window already elapsed",
			ctx:  actorContext("student-1", constant.RoleStudent),
			setupMock: func(f fixture) {
				elapsed := storedReservation("res-1", "student-1", constant.ReservationStatusConfirmed)
				elapsed.StartTime = fixedNow.Add(-4 * time.Hour)
				elapsed.EndTime = fixedNow.Add(-2 * time.Hour)

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(elapsed, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.service.Cancel(tt.ctx, "res-1")

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestCreateReservationRace drives two concurrent requests for the same
// window through the service. The repository serializes them the way the
// database lock does, so exactly one request wins and the loser surfaces a
// conflict instead of a double booking.
func TestCreateReservationRace(t *testing.T) {
	f := newFixture(t)

	req := dto.CreateReservationRequest{
		EquipmentIDs: []string{"eq-1"},
		StartTime:    "2026-09-01T10:00:00Z",
		EndTime:      "2026-09-01T12:00:00Z",
		Purpose:      "thermal cycling",
	}

	f.equipmentRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(equipmentRows("lab-1", "eq-1"), nil).
		Times(2)

	var mu sync.Mutex

	booked := false

	f.repo.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, model.Reservation, []string, bool) error {
			mu.Lock()
			defer mu.Unlock()

			if booked {
				return failure.Conflict("requested window conflicts with an existing reservation")
			}

			booked = true

			return nil
		}).
		Times(2)

	var wg sync.WaitGroup

	errs := make([]error, 2)

	for i := range errs {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			ctx := actorContext("student-1", constant.RoleStudent)
			_, errs[i] = f.service.Create(ctx, req)
		}(i)
	}

	wg.Wait()

	conflicts := 0

	for _, err := range errs {
		if err != nil {
			assert.Equal(t, http.StatusConflict, failure.GetCode(err))

			conflicts++
		}
	}

	assert.Equal(t, 1, conflicts)
}
