//go:build wireinject
// +build wireinject

package di

import (
	"labdesk/config"
	"labdesk/infras/jwt"
	"labdesk/infras/kafka"
	"labdesk/infras/otel"
	"labdesk/infras/postgres"
	"labdesk/infras/redis"
	"labdesk/permissions"
	"labdesk/shared/cache"
	"labdesk/shared/clock"
	"labdesk/transport/http"
	"labdesk/transport/http/middleware"
	"labdesk/transport/http/router"

	"github.com/google/wire"

	authService "labdesk/internal/domains/auth/service"
	equipmentRepository "labdesk/internal/domains/equipment/repository"
	equipmentService "labdesk/internal/domains/equipment/service"
	labRepository "labdesk/internal/domains/lab/repository"
	labService "labdesk/internal/domains/lab/service"
	maintenanceRepository "labdesk/internal/domains/maintenance/repository"
	maintenanceService "labdesk/internal/domains/maintenance/service"
	reportService "labdesk/internal/domains/report/service"
	reservationRepository "labdesk/internal/domains/reservation/repository"
	reservationService "labdesk/internal/domains/reservation/service"
	userRepository "labdesk/internal/domains/user/repository"
	userService "labdesk/internal/domains/user/service"

	authHandler "labdesk/internal/handlers/auth"
	equipmentHandler "labdesk/internal/handlers/equipment"
	healthHandler "labdesk/internal/handlers/health"
	labHandler "labdesk/internal/handlers/lab"
	reportHandler "labdesk/internal/handlers/report"
	reservationHandler "labdesk/internal/handlers/reservation"
	userHandler "labdesk/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var labDomain = wire.NewSet(
	labRepository.New,
	labService.New,
)

var equipmentDomain = wire.NewSet(
	equipmentRepository.New,
	equipmentService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var maintenanceDomain = wire.NewSet(
	maintenanceRepository.New,
	maintenanceService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var domains = wire.NewSet(
	authDomain,
	labDomain,
	equipmentDomain,
	reservationDomain,
	maintenanceDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	healthHandler.New,
	labHandler.New,
	equipmentHandler.New,
	reservationHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
