package lab

import (
	"net/http"

	"labdesk/infras/otel"
	"labdesk/internal/domains/lab/model"
	"labdesk/internal/domains/lab/model/dto"
	"labdesk/internal/domains/lab/service"
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
	service       service.Lab
	reportService reportService.Report
	otel          otel.Otel
}

func New(service service.Lab, reportService reportService.Report, otel otel.Otel) Handler {
	return Handler{
		service:       service,
		reportService: reportService,
		otel:          otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/labs", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateLab)
		routerGroup.Get("/", handler.GetLabs)
		routerGroup.Get("/{id}", handler.GetLabByID)
		routerGroup.Patch("/{id}", handler.UpdateLab)
		routerGroup.Delete("/{id}", handler.DeleteLab)
		routerGroup.Get("/{id}/utilization", handler.GetLabUtilization)
	})
}

// CreateLab handles the creation of a new lab.
// @Summary Create a new lab
// @Description Create a new lab with the provided details. The building and room number pair must be unique.
// @Tags Lab
// @Accept json
// @Produce json
// @Param request body dto.CreateLabRequest true "Create Lab Request"
// @Success 201 {object} response.Message "Lab created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/labs [post]
// @Security BearerAuth
func (handler *Handler) CreateLab(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLab")
	defer scope.End()

	req := dto.CreateLabRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create lab")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Lab created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Lab created successfully")
}

// GetLabs retrieves all labs based on query parameters.
// @Summary Get all labs
// @Description Retrieve all labs with optional filtering and pagination.
// @Tags Lab
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param building query string false "Filter by building"
// @Success 200 {object} response.Data[dto.LabResponse] "List of labs"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/labs [get]
// @Security BearerAuth
func (handler *Handler) GetLabs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLabs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)
	building := r.URL.Query().Get(model.FieldBuilding)

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

	if building != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBuilding,
			Operator: gDto.FilterOperatorLike,
			Value:    building,
			Table:    model.TableName,
		})
	}

	labs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get labs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Labs retrieved successfully")

	response.WithJSON(w, http.StatusOK, labs)
}

// GetLabByID retrieves a lab by its ID.
// @Summary Get a lab by ID
// @Description Retrieve a lab by its unique identifier.
// @Tags Lab
// @Accept json
// @Produce json
// @Param id path string true "Lab ID"
// @Success 200 {object} response.Data[dto.LabResponse] "Lab details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/labs/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetLabByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLabByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	lab, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lab by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lab retrieved successfully")

	response.WithJSON(w, http.StatusOK, lab)
}

// UpdateLab updates an existing lab by its ID.
// @Summary Update a lab by ID
// @Description Update the details of an existing lab.
// @Tags Lab
// @Accept json
// @Produce json
// @Param id path string true "Lab ID"
// @Param request body dto.UpdateLabRequest true "Update Lab Request"
// @Success 200 {object} response.Message "Lab updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/labs/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateLab(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLab")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateLabRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update lab")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lab updated successfully")

	response.WithMessage(w, http.StatusOK, "Lab updated successfully")
}

// DeleteLab deletes a lab by its ID.
// @Summary Delete a lab by ID
// @Description Delete a lab. Fails while any equipment is still assigned to it.
// @Tags Lab
// @Accept json
// @Produce json
// @Param id path string true "Lab ID"
// @Success 200 {object} response.Message "Lab deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/labs/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteLab(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLab")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete lab")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lab deleted successfully")

	response.WithMessage(w, http.StatusOK, "Lab deleted successfully")
}

// GetLabUtilization reports booked time for a lab over a trailing window.
// @Summary Get lab utilization
// @Description Report utilized minutes and percentage for a lab over the trailing N days.
// @Tags Lab
// @Accept json
// @Produce json
// @Param id path string true "Lab ID"
// @Param days query integer false "Report window in days (default 7, max 90)"
// @Success 200 {object} response.Data[dto.UtilizationResponse] "Lab utilization"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/labs/{id}/utilization [get]
// @Security BearerAuth
func (handler *Handler) GetLabUtilization(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLabUtilization")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	days, err := parseDays(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	report, err := handler.reportService.LabUtilization(ctx, id, days)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lab utilization")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lab utilization retrieved successfully")

	response.WithJSON(w, http.StatusOK, report)
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
