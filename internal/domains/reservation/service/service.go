package service

import (
	"context"
	"fmt"

	"labdesk/config"
	"labdesk/infras/kafka"
	"labdesk/infras/otel"
	equipmentModel "labdesk/internal/domains/equipment/model"
	equipmentRepo "labdesk/internal/domains/equipment/repository"
	"labdesk/internal/domains/reservation/model"
	"labdesk/internal/domains/reservation/model/dto"
	"labdesk/internal/domains/reservation/repository"
	"labdesk/internal/domains/reservation/timegrid"
	"labdesk/permissions"
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
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

const (
	eventReservationCreated   = "reservation.created"
	eventReservationConfirmed = "reservation.confirmed"
	eventReservationCancelled = "reservation.cancelled"
)

// reservationEvent is the payload published to the reservation events topic
// on every lifecycle transition.
type reservationEvent struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservation_id"`
	LabID         string `json:"lab_id"`
	UserID        string `json:"user_id"`
	OccurredAt    string `json:"occurred_at"`
}

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo          repository.Reservation
	equipmentRepo equipmentRepo.Equipment
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
	clock         clock.Clock
	broker        kafka.Client
}

func New(repo repository.Reservation, equipmentRepo equipmentRepo.Equipment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clk clock.Clock, broker kafka.Client) Reservation {
	return &serviceImpl{
		repo:          repo,
		equipmentRepo: equipmentRepo,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
		clock:         clk,
		broker:        broker,
	}
}

func actorFromContext(ctx context.Context) permissions.Actor {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return permissions.Actor{ID: userID, Role: role}
}

// Create validates the window against the grid rules, resolves the equipment
// set, and hands the conflict check plus insert to the repository as one
// atomic operation. The reservation always starts pending; approval happens
// downstream, never at creation.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse reservation window")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid timestamp format: %v", err)) //nolint:wrapcheck
	}

	now := s.clock.Now()
	if err = timegrid.ValidateSlot(reservation.StartTime, reservation.EndTime, now); err != nil {
		return res, err //nolint:wrapcheck
	}

	labID, err := s.resolveLab(ctx, req.EquipmentIDs)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	reservation.LabID = labID

	if err = s.repo.Reserve(ctx, reservation, req.EquipmentIDs, s.cfg.App.Policy.LabExclusiveBooking); err != nil {
		log.Error().Err(err).Str("lab_id", labID).Msg("failed to reserve")

		return res, err //nolint:wrapcheck
	}

	s.publishEvent(ctx, eventReservationCreated, reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	res.FromModel(reservation, now)
	res.EquipmentIDs = req.EquipmentIDs

	return res, nil
}

// resolveLab fetches the requested equipment rows and enforces that every ID
// resolves and that all rows share one lab.
func (s *serviceImpl) resolveLab(ctx context.Context, equipmentIDs []string) (string, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    equipmentModel.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    equipmentIDs,
				Table:    equipmentModel.TableName,
			},
		},
	}

	equipment, err := s.equipmentRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve equipment")

		return "", fmt.Errorf("failed to resolve equipment: %w", err)
	}

	if len(equipment) != len(equipmentIDs) {
		return "", failure.NotFound("equipment not found") //nolint:wrapcheck
	}

	labID := equipment[0].LabID
	for _, item := range equipment {
		if item.LabID != labID {
			return "", failure.BadRequestFromString("all equipment in a reservation must belong to the same lab") //nolint:wrapcheck
		}
	}

	return labID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, s.clock.Now(), total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	equipmentIDs, err := s.repo.GetEquipmentIDs(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation equipment")

		return res, fmt.Errorf("failed to get reservation equipment: %w", err)
	}

	res.FromModel(reservation, s.clock.Now())
	res.EquipmentIDs = equipmentIDs

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateReservationRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	actor := actorFromContext(ctx)
	if !permissions.CanEditReservation(actor, reservation.UserID) {
		return failure.ForbiddenError //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, actor.ID)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return fmt.Errorf("failed to update reservation: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Confirm moves a pending reservation to confirmed. Only staff other than
// the creator may approve it, with the documented exception that
// administrators may also approve their own.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	actor := actorFromContext(ctx)
	if !permissions.CanConfirm(actor, reservation.UserID) {
		return failure.Forbidden("you may not confirm this reservation") //nolint:wrapcheck
	}

	if err = s.ensureMutable(reservation); err != nil {
		return err //nolint:wrapcheck
	}

	if reservation.Status != constant.ReservationStatusPending {
		return failure.BadRequestFromString("only pending reservations can be confirmed") //nolint:wrapcheck
	}

	if err = s.setStatus(ctx, reservation, constant.ReservationStatusConfirmed, actor.ID); err != nil {
		return err //nolint:wrapcheck
	}

	s.publishEvent(ctx, eventReservationConfirmed, reservation)

	return nil
}

// Cancel releases the slot. Owners may always cancel their own reservations;
// staff may cancel on behalf of others. Cancelled windows no longer count in
// any conflict check.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	actor := actorFromContext(ctx)
	if !permissions.CanCancel(actor, reservation.UserID) {
		return failure.Forbidden("you may not cancel this reservation") //nolint:wrapcheck
	}

	if err = s.ensureMutable(reservation); err != nil {
		return err //nolint:wrapcheck
	}

	if reservation.Status == constant.ReservationStatusCancelled {
		return failure.BadRequestFromString("reservation is already cancelled") //nolint:wrapcheck
	}

	if err = s.setStatus(ctx, reservation, constant.ReservationStatusCancelled, actor.ID); err != nil {
		return err //nolint:wrapcheck
	}

	s.publishEvent(ctx, eventReservationCancelled, reservation)

	return nil
}

func (s *serviceImpl) fetch(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	return reservation, nil
}

// ensureMutable rejects transitions on reservations whose window has already
// elapsed. Elapsed reservations are immutable history.
func (s *serviceImpl) ensureMutable(reservation model.Reservation) error {
	if s.clock.Now().After(reservation.EndTime) {
		return failure.BadRequestFromString("reservation is immutable once its window has elapsed") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) setStatus(ctx context.Context, reservation model.Reservation, newStatus, actorID string) error {
	updatedFields := map[string]any{
		model.FieldStatus:        newStatus,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actorID,
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(reservation.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("status", newStatus).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	s.invalidate(ctx, reservation.ID)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()
}

// publishEvent emits a lifecycle event asynchronously. Event delivery is
// best-effort and never fails the request.
func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, reservation model.Reservation) {
	if s.broker == nil {
		return
	}

	event := reservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		LabID:         reservation.LabID,
		UserID:        reservation.UserID,
		OccurredAt:    timezone.Format(s.clock.Now(), constant.DateFormat),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.broker.SendMessages(c, constant.KafkaTopicReservationEvents, kafka.Message{
			Key:   reservation.ID,
			Value: event,
		}); err != nil {
			log.Error().Err(err).Str("type", eventType).Msg("failed to publish reservation event")
		}
	}()
}
