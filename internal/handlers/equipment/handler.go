package equipment

import (
	"net/http"

	"labdesk/infras/otel"
	"labdesk/internal/domains/equipment/model"
	"labdesk/internal/domains/equipment/model/dto"
	"labdesk/internal/domains/equipment/service"
	maintenanceDto "labdesk/internal/domains/maintenance/model/dto"
	maintenanceService "labdesk/internal/domains/maintenance/service"
	reportService "labdesk/internal/domains/report/service"
	"labdesk/shared"
	"labdesk/shared/constant"
	gDto "labdesk/shared/dto"
	"labdesk/shared/failure"
	"labdesk/shared/validator"
	"labdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service            service.Equipment
	maintenanceService maintenanceService.MaintenanceLog
	reportService      reportService.Report
	otel               otel.Otel
}

func New(service service.Equipment, maintenanceService maintenanceService.MaintenanceLog, reportService reportService.Report, otel otel.Otel) Handler {
	return Handler{
		service:            service,
		maintenanceService: maintenanceService,
		reportService:      reportService,
		otel:               otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/equipment", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEquipment)
		routerGroup.Get("/", handler.GetEquipment)
		routerGroup.Get("/{id}", handler.GetEquipmentByID)
		routerGroup.Patch("/{id}", handler.UpdateEquipment)
		routerGroup.Delete("/{id}", handler.DeleteEquipment)
		routerGroup.Patch("/{id}/status", handler.SetEquipmentStatus)
		routerGroup.Get("/{id}/status", handler.GetEquipmentStatus)
		routerGroup.Get("/{id}/utilization", handler.GetEquipmentUtilization)
		routerGroup.Get("/{id}/maintenance", handler.GetMaintenanceLogs)
		routerGroup.Post("/{id}/maintenance", handler.CreateMaintenanceLog)
		routerGroup.Patch("/{id}/maintenance/{logID}", handler.UpdateMaintenanceLog)
	})
}

// CreateEquipment handles the creation of a new piece of equipment.
// @Summary Create new equipment
// @Description Register a piece of equipment in a lab. The serial number must be unique.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param request body dto.CreateEquipmentRequest true "Create Equipment Request"
// @Success 201 {object} response.Message "Equipment created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment [post]
// @Security BearerAuth
func (handler *Handler) CreateEquipment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEquipment")
	defer scope.End()

	req := dto.CreateEquipmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create equipment")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Equipment created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Equipment created successfully")
}

// GetEquipment retrieves all equipment based on query parameters.
// @Summary Get all equipment
// @Description Retrieve all equipment with optional filtering and pagination.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param lab_id query string false "Filter by lab ID"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by stored status (operational, maintenance, out_of_order)"
// @Success 200 {object} response.Data[dto.EquipmentResponse] "List of equipment"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment [get]
// @Security BearerAuth
func (handler *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEquipment")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
	labID := r.URL.Query().Get(model.FieldLabID)
	category := r.URL.Query().Get(model.FieldCategory)
	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if labID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLabID,
			Operator: gDto.FilterOperatorEq,
			Value:    labID,
			Table:    model.TableName,
		})
	}

	if category != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	equipment, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get equipment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment retrieved successfully")

	response.WithJSON(w, http.StatusOK, equipment)
}

// GetEquipmentByID retrieves a piece of equipment by its ID.
// @Summary Get equipment by ID
// @Description Retrieve a piece of equipment by its unique identifier, including its computed effective status.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} response.Data[dto.EquipmentResponse] "Equipment details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetEquipmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEquipmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	equipment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get equipment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment retrieved successfully")

	response.WithJSON(w, http.StatusOK, equipment)
}

// UpdateEquipment updates an existing piece of equipment by its ID.
// @Summary Update equipment by ID
// @Description Update the details of an existing piece of equipment.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body dto.UpdateEquipmentRequest true "Update Equipment Request"
// @Success 200 {object} response.Message "Equipment updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEquipment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateEquipmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update equipment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment updated successfully")

	response.WithMessage(w, http.StatusOK, "Equipment updated successfully")
}

// DeleteEquipment deletes a piece of equipment by its ID.
// @Summary Delete equipment by ID
// @Description Delete a piece of equipment. Fails while any pending or confirmed reservation references it.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} response.Message "Equipment deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEquipment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete equipment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment deleted successfully")

	response.WithMessage(w, http.StatusOK, "Equipment deleted successfully")
}

// SetEquipmentStatus changes the stored operational state of equipment.
// @Summary Set equipment status
// @Description Change the stored operational state (operational, maintenance, out_of_order).
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body dto.SetEquipmentStatusRequest true "Set Equipment Status Request"
// @Success 200 {object} response.Message "Equipment status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetEquipmentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetEquipmentStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SetEquipmentStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set equipment status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment status updated successfully")

	response.WithMessage(w, http.StatusOK, "Equipment status updated successfully")
}

// GetEquipmentStatus reports the stored and effective status of equipment.
// @Summary Get equipment status
// @Description Report the stored state and the reservation overlay (available or in use) at the current instant.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} response.Data[dto.EquipmentStatusResponse] "Equipment status"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment/{id}/status [get]
// @Security BearerAuth
func (handler *Handler) GetEquipmentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEquipmentStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	status, err := handler.service.Status(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get equipment status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment status retrieved successfully")

	response.WithJSON(w, http.StatusOK, status)
}

// GetEquipmentUtilization reports booked time for equipment over a trailing window.
// @Summary Get equipment utilization
// @Description Report utilized minutes and percentage for a piece of equipment over the trailing N days.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param days query integer false "Report window in days (default 7, max 90)"
// @Success 200 {object} response.Data[dto.UtilizationResponse] "Equipment utilization"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment/{id}/utilization [get]
// @Security BearerAuth
func (handler *Handler) GetEquipmentUtilization(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEquipmentUtilization")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	days, err := parseDays(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	report, err := handler.reportService.EquipmentUtilization(ctx, id, days)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get equipment utilization")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment utilization retrieved successfully")

	response.WithJSON(w, http.StatusOK, report)
}

// GetMaintenanceLogs retrieves the maintenance history of equipment.
// @Summary Get equipment maintenance logs
// @Description Retrieve the maintenance log entries for a piece of equipment with pagination.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[maintenanceDto.MaintenanceLogResponse] "Maintenance logs"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment/{id}/maintenance [get]
// @Security BearerAuth
func (handler *Handler) GetMaintenanceLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMaintenanceLogs")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	logs, err := handler.maintenanceService.GetAll(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get maintenance logs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance logs retrieved successfully")

	response.WithJSON(w, http.StatusOK, logs)
}

// CreateMaintenanceLog records a maintenance event for equipment.
// @Summary Create a maintenance log entry
// @Description Record a maintenance event for a piece of equipment.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body maintenanceDto.CreateMaintenanceLogRequest true "Create Maintenance Log Request"
// @Success 201 {object} response.Message "Maintenance log created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment/{id}/maintenance [post]
// @Security BearerAuth
func (handler *Handler) CreateMaintenanceLog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMaintenanceLog")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := maintenanceDto.CreateMaintenanceLogRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.maintenanceService.Create(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create maintenance log")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance log created successfully")

	response.WithMessage(w, http.StatusCreated, "Maintenance log created successfully")
}

// UpdateMaintenanceLog amends a maintenance log entry.
// @Summary Update a maintenance log entry
// @Description Update the description or resolved flag of a maintenance log entry.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param logID path string true "Maintenance Log ID"
// @Param request body maintenanceDto.UpdateMaintenanceLogRequest true "Update Maintenance Log Request"
// @Success 200 {object} response.Message "Maintenance log updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipment/{id}/maintenance/{logID} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMaintenanceLog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMaintenanceLog")
	defer scope.End()

	logID := chi.URLParam(r, constant.RequestParamLogID)

	req := maintenanceDto.UpdateMaintenanceLogRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.maintenanceService.Update(ctx, req, logID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update maintenance log")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance log updated successfully")

	response.WithMessage(w, http.StatusOK, "Maintenance log updated successfully")
}

func parseDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get(constant.RequestParamDays)
	if raw == "" {
		return 0, nil
	}

	days, err := shared.ConvertStringToInt(raw)
	if err != nil {
		return 0, failure.BadRequestFromString("days must be an integer") //nolint:wrapcheck
	}

	return days, nil
}
