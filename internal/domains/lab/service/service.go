package service

import (
	"context"
	"fmt"

	"labdesk/config"
	"labdesk/infras/otel"
	equipmentModel "labdesk/internal/domains/equipment/model"
	equipmentRepo "labdesk/internal/domains/equipment/repository"
	"labdesk/internal/domains/lab/model"
	"labdesk/internal/domains/lab/model/dto"
	"labdesk/internal/domains/lab/repository"
	"labdesk/shared"
	"labdesk/shared/cache"
	"labdesk/shared/constant"
	gDto "labdesk/shared/dto"
	"labdesk/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetLab    = "lab:get"
	cacheGetAllLab = "lab:gets"
	cacheCountLab  = "lab:count"
)

type Lab interface {
	Create(ctx context.Context, req dto.CreateLabRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLabsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.LabResponse, error)
	Update(ctx context.Context, req dto.UpdateLabRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo          repository.Lab
	equipmentRepo equipmentRepo.Equipment
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(repo repository.Lab, equipmentRepo equipmentRepo.Equipment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Lab {
	return &serviceImpl{
		repo:          repo,
		equipmentRepo: equipmentRepo,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLabRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, filterByRoom(req.Building, req.RoomNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to check lab uniqueness")

		return fmt.Errorf("failed to check lab uniqueness: %w", err)
	}

	if exist {
		return failure.Conflict("a lab with this building and room number already exists") //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to insert lab")

		return fmt.Errorf("failed to insert lab: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllLab)
		shared.InvalidateCaches(c, s.cache, cacheCountLab)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLabsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllLab, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for labs")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count labs")

		return res, fmt.Errorf("failed to count labs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get labs")

		return res, fmt.Errorf("failed to get labs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save labs to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountLab, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lab count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count labs")

		return res, fmt.Errorf("failed to count labs: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lab count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LabResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetLab, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lab")

		return res, nil
	}

	lab, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lab")

		return res, fmt.Errorf("failed to get lab: %w", err)
	}

	if lab.ID == constant.Empty {
		return res, failure.NotFound("lab not found") //nolint:wrapcheck
	}

	res.FromModel(lab)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lab to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateLabRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check lab existence")

		return fmt.Errorf("failed to check lab existence: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("lab not found") //nolint:wrapcheck
	}

	// Re-check the building and room pair when either half moves.
	if req.Building != constant.Empty || req.RoomNumber != constant.Empty {
		building := current.Building
		if req.Building != constant.Empty {
			building = req.Building
		}

		roomNumber := current.RoomNumber
		if req.RoomNumber != constant.Empty {
			roomNumber = req.RoomNumber
		}

		if building != current.Building || roomNumber != current.RoomNumber {
			exist, err := s.repo.Exist(ctx, filterByRoom(building, roomNumber))
			if err != nil {
				log.Error().Err(err).Msg("failed to check lab uniqueness")

				return fmt.Errorf("failed to check lab uniqueness: %w", err)
			}

			if exist {
				return failure.Conflict("a lab with this building and room number already exists") //nolint:wrapcheck
			}
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update lab")

		return fmt.Errorf("failed to update lab: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetLab, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete lab cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllLab)
		shared.InvalidateCaches(c, s.cache, cacheCountLab)
	}()

	return nil
}

// Delete refuses while any equipment still references the lab. Equipment must
// be moved or removed first.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if lab exists")

		return fmt.Errorf("failed to check if lab exists: %w", err)
	}

	if !exist {
		return failure.NotFound("lab not found") //nolint:wrapcheck
	}

	hasEquipment, err := s.equipmentRepo.Exist(ctx, shared.FilterByID(id, equipmentModel.FieldLabID, equipmentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check lab equipment")

		return fmt.Errorf("failed to check lab equipment: %w", err)
	}

	if hasEquipment {
		return failure.Conflict("lab still has equipment assigned to it") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete lab")

		return fmt.Errorf("failed to delete lab: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetLab, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete lab from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllLab)
		shared.InvalidateCaches(c, s.cache, cacheCountLab)
	}()

	return nil
}

func filterByRoom(building, roomNumber string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBuilding,
				Operator: gDto.FilterOperatorEq,
				Value:    building,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRoomNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    roomNumber,
				Table:    model.TableName,
			},
		},
	}
}
