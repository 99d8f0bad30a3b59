package report

import (
	"net/http"

	"labdesk/infras/otel"
	"labdesk/internal/domains/report/service"
	"labdesk/shared"
	"labdesk/shared/constant"
	"labdesk/shared/failure"
	"labdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/users/{id}/utilization", handler.GetUserUtilization)
	})
}

// GetUserUtilization reports booked time for a user over a trailing window.
// @Summary Get user utilization
// @Description Report utilized minutes and percentage for a user's confirmed reservations over the trailing N days.
// @Tags Report
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param days query integer false "Report window in days (default 7, max 90)"
// @Success 200 {object} response.Data[dto.UtilizationResponse] "User utilization"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/users/{id}/utilization [get]
// @Security BearerAuth
func (handler *Handler) GetUserUtilization(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserUtilization")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	days := 0

	if raw := r.URL.Query().Get(constant.RequestParamDays); raw != "" {
		parsed, err := shared.ConvertStringToInt(raw)
		if err != nil {
			scope.TraceError(err)
			response.WithError(w, failure.BadRequestFromString("days must be an integer"))

			return
		}

		days = parsed
	}

	report, err := handler.service.UserUtilization(ctx, id, days)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user utilization")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User utilization retrieved successfully")

	response.WithJSON(w, http.StatusOK, report)
}
