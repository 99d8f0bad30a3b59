package service

import (
	"context"
	"fmt"
	"labdesk/config"
	"labdesk/infras/otel"
	equipmentModel "labdesk/internal/domains/equipment/model"
	equipmentRepo "labdesk/internal/domains/equipment/repository"
	"labdesk/internal/domains/maintenance/model"
	"labdesk/internal/domains/maintenance/model/dto"
	"labdesk/internal/domains/maintenance/repository"
	"labdesk/shared"
	"labdesk/shared/constant"
	gDto "labdesk/shared/dto"
	"labdesk/shared/failure"

	"github.com/rs/zerolog/log"
)

type MaintenanceLog interface {
	Create(ctx context.Context, req dto.CreateMaintenanceLogRequest, equipmentID string) error
	GetAll(ctx context.Context, equipmentID string, req gDto.QueryParams) (dto.GetMaintenanceLogsResponse, error)
	Update(ctx context.Context, req dto.UpdateMaintenanceLogRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo          repository.MaintenanceLog
	equipmentRepo equipmentRepo.Equipment
	cfg           *config.Config
	otel          otel.Otel
}

func New(repo repository.MaintenanceLog, equipmentRepo equipmentRepo.Equipment, cfg *config.Config, otel otel.Otel) MaintenanceLog {
	return &serviceImpl{
		repo:          repo,
		equipmentRepo: equipmentRepo,
		cfg:           cfg,
		otel:          otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMaintenanceLogRequest, equipmentID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.equipmentRepo.Exist(ctx, shared.FilterByID(equipmentID, equipmentModel.FieldID, equipmentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check equipment existence")

		return fmt.Errorf("failed to check equipment existence: %w", err)
	}

	if !exist {
		return failure.NotFound("equipment not found") //nolint:wrapcheck
	}

	logEntry, err := req.ToModel(equipmentID, user)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid timestamp format: %v", err)) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, logEntry); err != nil {
		log.Error().Err(err).Msg("failed to create maintenance log")

		return fmt.Errorf("failed to create maintenance log: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, equipmentID string, req gDto.QueryParams) (res dto.GetMaintenanceLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(equipmentID, model.FieldEquipmentID, model.TableName)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count maintenance logs")

		return res, fmt.Errorf("failed to count maintenance logs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance logs")

		return res, fmt.Errorf("failed to get maintenance logs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMaintenanceLogRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateMaintenanceLogRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if maintenance log exists")

		return fmt.Errorf("failed to check if maintenance log exists: %w", err)
	}

	if !exist {
		return failure.NotFound("maintenance log not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update maintenance log")

		return fmt.Errorf("failed to update maintenance log: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if maintenance log exists")

		return fmt.Errorf("failed to check if maintenance log exists: %w", err)
	}

	if !exist {
		return failure.NotFound("maintenance log not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete maintenance log")

		return fmt.Errorf("failed to delete maintenance log: %w", err)
	}

	return nil
}
