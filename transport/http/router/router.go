package router

import (
	"labdesk/internal/handlers/auth"
	"labdesk/internal/handlers/equipment"
	"labdesk/internal/handlers/health"
	"labdesk/internal/handlers/lab"
	"labdesk/internal/handlers/report"
	"labdesk/internal/handlers/reservation"
	"labdesk/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Health      health.Handler
	Lab         lab.Handler
	Equipment   equipment.Handler
	Reservation reservation.Handler
	Report      report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Lab.Router(routerGroup)
		r.DomainHandlers.Equipment.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
