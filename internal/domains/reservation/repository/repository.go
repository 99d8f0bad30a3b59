package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"labdesk/infras/otel"
	"labdesk/infras/postgres"
	"labdesk/internal/domains/reservation/model"
	"labdesk/shared/constant"
	gDto "labdesk/shared/dto"
	"labdesk/shared/failure"
	"labdesk/shared/logger"
	gRepo "labdesk/shared/repository"

	"github.com/lib/pq"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	Reserve(ctx context.Context, res model.Reservation, equipmentIDs []string, labExclusive bool) error
	GetEquipmentIDs(ctx context.Context, reservationID string) ([]string, error)
	GetEquipmentLinks(ctx context.Context, reservationIDs []string) ([]model.ReservationEquipment, error)
	HasActiveLinks(ctx context.Context, equipmentID string) (bool, error)
	GetConfirmedWindows(ctx context.Context, equipmentIDs []string, at time.Time) ([]model.EquipmentWindow, error)
	GetInWindowByLab(ctx context.Context, labID string, winStart, winEnd time.Time) ([]model.Reservation, error)
	GetInWindowByEquipment(ctx context.Context, equipmentID string, winStart, winEnd time.Time) ([]model.Reservation, error)
	GetInWindowByUser(ctx context.Context, userID string, winStart, winEnd time.Time) ([]model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	linkRepo gRepo.Repository[model.ReservationEquipment]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		linkRepo:   gRepo.NewRepository[model.ReservationEquipment](model.EntityName+"_link", model.LinkTableName, model.LinkFieldReservationID, db, otel),
		db:         db,
		otel:       otel,
	}
}

var errConflict = failure.Conflict("requested window conflicts with an existing reservation")

// nonTerminalStatuses are the stored statuses that still hold a time slot.
// Cancelled reservations release their slot entirely.
var nonTerminalStatuses = []string{constant.ReservationStatusPending, constant.ReservationStatusConfirmed}

// Reserve runs the conflict check and the insert of the reservation plus its
// equipment links inside one transaction. The lab row is locked first so two
// concurrent requests against the same lab serialize; the overlap re-check
// then sees any committed competitor. A btree_gist exclusion constraint on
// (equipment_id, window) backs this at the storage layer, so even a path that
// bypasses this method cannot double-book equipment.
func (repo *repositoryImpl) Reserve(ctx context.Context, res model.Reservation, equipmentIDs []string, labExclusive bool) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin reserve transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "SELECT id FROM labs WHERE id = $1 FOR UPDATE", res.LabID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock lab row: %w", err)
	}

	var overlapping int

	if labExclusive {
		query := `SELECT COUNT(id) FROM reservations
			WHERE lab_id = $1 AND status = ANY($2) AND start_time < $4 AND end_time > $3`
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)

		err = tx.GetContext(ctx, &overlapping, query, res.LabID, pq.Array(nonTerminalStatuses), res.StartTime, res.EndTime)
	} else {
		query := `SELECT COUNT(DISTINCT r.id) FROM reservations r
			JOIN reservation_equipment re ON re.reservation_id = r.id
			WHERE re.equipment_id = ANY($1) AND r.status = ANY($2) AND r.start_time < $4 AND r.end_time > $3`
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)

		err = tx.GetContext(ctx, &overlapping, query, pq.Array(equipmentIDs), pq.Array(nonTerminalStatuses), res.StartTime, res.EndTime)
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to check for overlapping reservations: %w", err)
	}

	if overlapping > 0 {
		return errConflict //nolint:wrapcheck
	}

	if err = repo.InsertTx(ctx, tx, res); err != nil {
		return translateConflict(err)
	}

	links := make([]model.ReservationEquipment, len(equipmentIDs))
	for i, equipmentID := range equipmentIDs {
		links[i] = model.ReservationEquipment{
			ReservationID: res.ID,
			EquipmentID:   equipmentID,
		}
	}

	if err = repo.linkRepo.InsertBulkTx(ctx, tx, links); err != nil {
		return translateConflict(err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return translateConflict(fmt.Errorf("failed to commit reserve transaction: %w", err))
	}

	return nil
}

// translateConflict maps exclusion and uniqueness violations from the
// reservation window constraint onto the conflict failure.
func translateConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeExclusionViolation, constant.PqErrorCodeUniqueViolation:
			return errConflict
		}
	}

	return err
}

func (repo *repositoryImpl) GetEquipmentIDs(ctx context.Context, reservationID string) (ids []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetEquipmentIDs")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := "SELECT equipment_id FROM reservation_equipment WHERE reservation_id = $1 ORDER BY equipment_id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &ids, query, reservationID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get reservation equipment: %w", err)
	}

	return ids, nil
}

func (repo *repositoryImpl) GetEquipmentLinks(ctx context.Context, reservationIDs []string) (links []model.ReservationEquipment, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetEquipmentLinks")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(reservationIDs) == 0 {
		return nil, nil
	}

	query := "SELECT reservation_id, equipment_id FROM reservation_equipment WHERE reservation_id = ANY($1)"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &links, query, pq.Array(reservationIDs)); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get reservation equipment links: %w", err)
	}

	return links, nil
}

// HasActiveLinks reports whether the equipment is referenced by any
// reservation that still holds its slot. Used to guard equipment deletion.
func (repo *repositoryImpl) HasActiveLinks(ctx context.Context, equipmentID string) (active bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.HasActiveLinks")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT EXISTS(SELECT 1 FROM reservations r
		JOIN reservation_equipment re ON re.reservation_id = r.id
		WHERE re.equipment_id = $1 AND r.status = ANY($2))`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.GetContext(ctx, &active, query, equipmentID, pq.Array(nonTerminalStatuses)); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check reservation links: %w", err)
	}

	return active, nil
}

// GetConfirmedWindows returns the confirmed reservation windows linked to the
// given equipment that could contain the instant at. The exact containment
// decision is left to the status resolver.
func (repo *repositoryImpl) GetConfirmedWindows(ctx context.Context, equipmentIDs []string, at time.Time) (windows []model.EquipmentWindow, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetConfirmedWindows")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(equipmentIDs) == 0 {
		return nil, nil
	}

	query := `SELECT re.equipment_id, r.start_time, r.end_time FROM reservations r
		JOIN reservation_equipment re ON re.reservation_id = r.id
		WHERE re.equipment_id = ANY($1) AND r.status = $2 AND r.start_time <= $3 AND r.end_time >= $3`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &windows, query, pq.Array(equipmentIDs), constant.ReservationStatusConfirmed, at); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get confirmed windows: %w", err)
	}

	return windows, nil
}

// The three window queries below feed the utilization reports. They use the
// inclusive-overlap test (start <= winEnd AND end >= winStart) so a
// reservation touching the window boundary still appears in the timeline;
// clamping decides whether it contributes any minutes.

const reservationColumns = "id, lab_id, user_id, start_time, end_time, purpose, notes, status, created_by, modified_by"

func (repo *repositoryImpl) GetInWindowByLab(ctx context.Context, labID string, winStart, winEnd time.Time) (res []model.Reservation, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetInWindowByLab")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE lab_id = $1 AND start_time <= $3 AND end_time >= $2 ORDER BY start_time`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &res, query, labID, winStart, winEnd); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get reservations for lab: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) GetInWindowByEquipment(ctx context.Context, equipmentID string, winStart, winEnd time.Time) (res []model.Reservation, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetInWindowByEquipment")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT r.id, r.lab_id, r.user_id, r.start_time, r.end_time, r.purpose, r.status, r.notes, r.created_by, r.modified_by
		FROM reservations r
		JOIN reservation_equipment re ON re.reservation_id = r.id
		WHERE re.equipment_id = $1 AND r.start_time <= $3 AND r.end_time >= $2 ORDER BY r.start_time`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &res, query, equipmentID, winStart, winEnd); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get reservations for equipment: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) GetInWindowByUser(ctx context.Context, userID string, winStart, winEnd time.Time) (res []model.Reservation, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetInWindowByUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE user_id = $1 AND start_time <= $3 AND end_time >= $2 ORDER BY start_time`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &res, query, userID, winStart, winEnd); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get reservations for user: %w", err)
	}

	return res, nil
}
