package service

import (
	"context"
	"fmt"
	"time"

	"labdesk/config"
	"labdesk/infras/otel"
	equipmentModel "labdesk/internal/domains/equipment/model"
	equipmentRepo "labdesk/internal/domains/equipment/repository"
	labModel "labdesk/internal/domains/lab/model"
	labRepo "labdesk/internal/domains/lab/repository"
	"labdesk/internal/domains/report/model/dto"
	reservationModel "labdesk/internal/domains/reservation/model"
	reservationRepo "labdesk/internal/domains/reservation/repository"
	userModel "labdesk/internal/domains/user/model"
	userRepo "labdesk/internal/domains/user/repository"
	"labdesk/shared"
	"labdesk/shared/clock"
	"labdesk/shared/constant"
	"labdesk/shared/failure"
	"labdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Report interface {
	LabUtilization(ctx context.Context, labID string, days int) (dto.UtilizationResponse, error)
	EquipmentUtilization(ctx context.Context, equipmentID string, days int) (dto.UtilizationResponse, error)
	UserUtilization(ctx context.Context, userID string, days int) (dto.UtilizationResponse, error)
}

type serviceImpl struct {
	reservationRepo reservationRepo.Reservation
	labRepo         labRepo.Lab
	equipmentRepo   equipmentRepo.Equipment
	userRepo        userRepo.User
	cfg             *config.Config
	otel            otel.Otel
	clock           clock.Clock
}

func New(reservationRepo reservationRepo.Reservation, labRepo labRepo.Lab, equipmentRepo equipmentRepo.Equipment, userRepo userRepo.User, cfg *config.Config, otel otel.Otel, clk clock.Clock) Report {
	return &serviceImpl{
		reservationRepo: reservationRepo,
		labRepo:         labRepo,
		equipmentRepo:   equipmentRepo,
		userRepo:        userRepo,
		cfg:             cfg,
		otel:            otel,
		clock:           clk,
	}
}

// window resolves the trailing report window ending now. A zero day count
// falls back to the default; anything beyond the cap is rejected.
func (s *serviceImpl) window(days int) (time.Time, time.Time, error) {
	if days == 0 {
		days = constant.DefaultReportDays
	}

	if days < 0 || days > constant.MaxReportDays {
		return time.Time{}, time.Time{}, failure.BadRequestFromString(fmt.Sprintf("days must be between 1 and %d", constant.MaxReportDays)) //nolint:wrapcheck
	}

	end := s.clock.Now()
	start := end.AddDate(0, 0, -days)

	return start, end, nil
}

func (s *serviceImpl) LabUtilization(ctx context.Context, labID string, days int) (res dto.UtilizationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LabUtilization")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.labRepo.Exist(ctx, shared.FilterByID(labID, labModel.FieldID, labModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check lab existence")

		return res, fmt.Errorf("failed to check lab existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("lab not found") //nolint:wrapcheck
	}

	winStart, winEnd, err := s.window(days)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	reservations, err := s.reservationRepo.GetInWindowByLab(ctx, labID, winStart, winEnd)
	if err != nil {
		log.Error().Err(err).Msg("failed to get lab reservations")

		return res, fmt.Errorf("failed to get lab reservations: %w", err)
	}

	return s.build(ctx, labID, winStart, winEnd, reservations)
}

func (s *serviceImpl) EquipmentUtilization(ctx context.Context, equipmentID string, days int) (res dto.UtilizationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EquipmentUtilization")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.equipmentRepo.Exist(ctx, shared.FilterByID(equipmentID, equipmentModel.FieldID, equipmentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check equipment existence")

		return res, fmt.Errorf("failed to check equipment existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("equipment not found") //nolint:wrapcheck
	}

	winStart, winEnd, err := s.window(days)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	reservations, err := s.reservationRepo.GetInWindowByEquipment(ctx, equipmentID, winStart, winEnd)
	if err != nil {
		log.Error().Err(err).Msg("failed to get equipment reservations")

		return res, fmt.Errorf("failed to get equipment reservations: %w", err)
	}

	return s.build(ctx, equipmentID, winStart, winEnd, reservations)
}

func (s *serviceImpl) UserUtilization(ctx context.Context, userID string, days int) (res dto.UtilizationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UserUtilization")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check user existence")

		return res, fmt.Errorf("failed to check user existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("user not found") //nolint:wrapcheck
	}

	winStart, winEnd, err := s.window(days)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	reservations, err := s.reservationRepo.GetInWindowByUser(ctx, userID, winStart, winEnd)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user reservations")

		return res, fmt.Errorf("failed to get user reservations: %w", err)
	}

	return s.build(ctx, userID, winStart, winEnd, reservations)
}

// build assembles the full report: the scalar summary, the clamped timeline
// and the per-user and per-equipment breakdowns. The equipment links for the
// fetched reservations are loaded here so every scope gets both breakdowns.
func (s *serviceImpl) build(ctx context.Context, subjectID string, winStart, winEnd time.Time, reservations []reservationModel.Reservation) (dto.UtilizationResponse, error) {
	summary := Aggregate(winStart, winEnd, reservations)

	var links []reservationModel.ReservationEquipment

	if len(reservations) > 0 {
		ids := make([]string, 0, len(reservations))
		for _, res := range reservations {
			ids = append(ids, res.ID)
		}

		var err error

		links, err = s.reservationRepo.GetEquipmentLinks(ctx, ids)
		if err != nil {
			log.Error().Err(err).Msg("failed to get reservation equipment links")

			return dto.UtilizationResponse{}, fmt.Errorf("failed to get reservation equipment links: %w", err)
		}
	}

	return dto.UtilizationResponse{
		SubjectID:        subjectID,
		WindowStart:      timezone.Format(winStart, constant.DateFormat),
		WindowEnd:        timezone.Format(winEnd, constant.DateFormat),
		WindowMinutes:    summary.WindowMinutes,
		UtilizedMinutes:  summary.UtilizedMinutes,
		UtilizationPct:   summary.UtilizationPct,
		ReservationCount: summary.ReservationCount,
		Timeline:         Timeline(winStart, winEnd, s.clock.Now(), reservations),
		ByUser:           BreakdownByUser(winStart, winEnd, summary, reservations),
		ByEquipment:      BreakdownByEquipment(winStart, winEnd, summary, reservations, links),
	}, nil
}
