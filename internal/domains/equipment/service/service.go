package service

import (
	"context"
	"fmt"

	"labdesk/config"
	"labdesk/infras/otel"
	"labdesk/internal/domains/equipment/model"
	"labdesk/internal/domains/equipment/model/dto"
	"labdesk/internal/domains/equipment/repository"
	labModel "labdesk/internal/domains/lab/model"
	labRepo "labdesk/internal/domains/lab/repository"
	reservationRepo "labdesk/internal/domains/reservation/repository"
	"labdesk/internal/domains/reservation/status"
	"labdesk/shared"
	"labdesk/shared/cache"
	"labdesk/shared/clock"
	"labdesk/shared/constant"
	gDto "labdesk/shared/dto"
	"labdesk/shared/failure"
	"labdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetEquipment    = "equipment:get"
	cacheGetAllEquipment = "equipment:gets"
	cacheCountEquipment  = "equipment:count"
)

type Equipment interface {
	Create(ctx context.Context, req dto.CreateEquipmentRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEquipmentResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.EquipmentResponse, error)
	Status(ctx context.Context, id string) (dto.EquipmentStatusResponse, error)
	Update(ctx context.Context, req dto.UpdateEquipmentRequest, id string) error
	SetStatus(ctx context.Context, req dto.SetEquipmentStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo            repository.Equipment
	labRepo         labRepo.Lab
	reservationRepo reservationRepo.Reservation
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
	clock           clock.Clock
}

func New(repo repository.Equipment, labRepo labRepo.Lab, reservationRepo reservationRepo.Reservation, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clk clock.Clock) Equipment {
	return &serviceImpl{
		repo:            repo,
		labRepo:         labRepo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
		clock:           clk,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEquipmentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	labExist, err := s.labRepo.Exist(ctx, shared.FilterByID(req.LabID, labModel.FieldID, labModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check lab existence")

		return fmt.Errorf("failed to check lab existence: %w", err)
	}

	if !labExist {
		return failure.NotFound("lab not found") //nolint:wrapcheck
	}

	serialTaken, err := s.repo.Exist(ctx, shared.FilterByID(req.SerialNumber, model.FieldSerialNumber, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check serial number uniqueness")

		return fmt.Errorf("failed to check serial number uniqueness: %w", err)
	}

	if serialTaken {
		return failure.Conflict("equipment with this serial number already exists") //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to insert equipment")

		return fmt.Errorf("failed to insert equipment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllEquipment)
		shared.InvalidateCaches(c, s.cache, cacheCountEquipment)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEquipmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEquipment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for equipment list")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count equipment")

		return res, fmt.Errorf("failed to count equipment: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get equipment")

		return res, fmt.Errorf("failed to get equipment: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save equipment list to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEquipment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for equipment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count equipment")

		return res, fmt.Errorf("failed to count equipment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save equipment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EquipmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	equipment, err := s.fetch(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(equipment)

	effective, err := s.resolveEffectiveStatus(ctx, equipment)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.EffectiveStatus = effective

	return res, nil
}

// Status reports the stored state plus the reservation overlay at the
// current instant.
func (s *serviceImpl) Status(ctx context.Context, id string) (res dto.EquipmentStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Status")
	defer scope.End()
	defer scope.TraceIfError(err)

	equipment, err := s.fetch(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	effective, err := s.resolveEffectiveStatus(ctx, equipment)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res = dto.EquipmentStatusResponse{
		ID:              equipment.ID,
		Status:          equipment.Status,
		EffectiveStatus: effective,
		AsOf:            timezone.Format(s.clock.Now(), constant.DateFormat),
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEquipmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check equipment existence")

		return fmt.Errorf("failed to check equipment existence: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("equipment not found") //nolint:wrapcheck
	}

	if req.LabID != constant.Empty && req.LabID != current.LabID {
		labExist, err := s.labRepo.Exist(ctx, shared.FilterByID(req.LabID, labModel.FieldID, labModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check lab existence")

			return fmt.Errorf("failed to check lab existence: %w", err)
		}

		if !labExist {
			return failure.NotFound("lab not found") //nolint:wrapcheck
		}

		// Moving equipment with live reservations would strand them in the
		// wrong lab.
		active, err := s.reservationRepo.HasActiveLinks(ctx, id)
		if err != nil {
			log.Error().Err(err).Msg("failed to check active reservations")

			return fmt.Errorf("failed to check active reservations: %w", err)
		}

		if active {
			return failure.Conflict("equipment has active reservations and cannot be moved") //nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update equipment")

		return fmt.Errorf("failed to update equipment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// SetStatus changes the stored operational state. Taking equipment out of
// service does not touch existing reservations; staff are expected to cancel
// affected bookings explicitly.
func (s *serviceImpl) SetStatus(ctx context.Context, req dto.SetEquipmentStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check equipment existence")

		return fmt.Errorf("failed to check equipment existence: %w", err)
	}

	if !exist {
		return failure.NotFound("equipment not found") //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update equipment status")

		return fmt.Errorf("failed to update equipment status: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete refuses while any pending or confirmed reservation still references
// the equipment.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check equipment existence")

		return fmt.Errorf("failed to check equipment existence: %w", err)
	}

	if !exist {
		return failure.NotFound("equipment not found") //nolint:wrapcheck
	}

	active, err := s.reservationRepo.HasActiveLinks(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check active reservations")

		return fmt.Errorf("failed to check active reservations: %w", err)
	}

	if active {
		return failure.Conflict("equipment has active reservations and cannot be deleted") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete equipment")

		return fmt.Errorf("failed to delete equipment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) fetch(ctx context.Context, id string) (model.Equipment, error) {
	equipment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get equipment")

		return equipment, fmt.Errorf("failed to get equipment: %w", err)
	}

	if equipment.ID == constant.Empty {
		return equipment, failure.NotFound("equipment not found") //nolint:wrapcheck
	}

	return equipment, nil
}

func (s *serviceImpl) resolveEffectiveStatus(ctx context.Context, equipment model.Equipment) (string, error) {
	now := s.clock.Now()

	confirmed, err := s.reservationRepo.GetConfirmedWindows(ctx, []string{equipment.ID}, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to get confirmed windows")

		return constant.Empty, fmt.Errorf("failed to get confirmed windows: %w", err)
	}

	windows := make([]status.Window, len(confirmed))
	for i, w := range confirmed {
		windows[i] = status.Window{Start: w.StartTime, End: w.EndTime}
	}

	return status.ResolveEquipment(equipment.Status, windows, now), nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEquipment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete equipment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEquipment)
		shared.InvalidateCaches(c, s.cache, cacheCountEquipment)
	}()
}
