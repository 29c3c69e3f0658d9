//go:build wireinject
// +build wireinject

package di

import (
	"rkhub/config"
	"rkhub/infras/jwt"
	"rkhub/infras/kafka"
	"rkhub/infras/otel"
	"rkhub/infras/postgres"
	"rkhub/infras/redis"
	"rkhub/infras/s3"
	"rkhub/permissions"
	"rkhub/shared/cache"
	"rkhub/transport/http"
	"rkhub/transport/http/middleware"
	"rkhub/transport/http/router"

	"github.com/google/wire"

	adminRepository "rkhub/internal/domains/admin/repository"
	adminService "rkhub/internal/domains/admin/service"
	admissionRepository "rkhub/internal/domains/admission/repository"
	admissionService "rkhub/internal/domains/admission/service"
	announcementRepository "rkhub/internal/domains/announcement/repository"
	announcementService "rkhub/internal/domains/announcement/service"
	authService "rkhub/internal/domains/auth/service"
	galleryRepository "rkhub/internal/domains/gallery/repository"
	galleryService "rkhub/internal/domains/gallery/service"

	adminHandler "rkhub/internal/handlers/admin"
	admissionHandler "rkhub/internal/handlers/admission"
	authHandler "rkhub/internal/handlers/auth"
	galleryHandler "rkhub/internal/handlers/gallery"
	homeHandler "rkhub/internal/handlers/home"
	updatesHandler "rkhub/internal/handlers/updates"
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
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var announcementDomain = wire.NewSet(
	announcementRepository.New,
	announcementService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var admissionDomain = wire.NewSet(
	admissionRepository.New,
	admissionService.New,
)

var authDomain = wire.NewSet(
	adminRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	announcementDomain,
	galleryDomain,
	admissionDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	homeHandler.New,
	updatesHandler.New,
	galleryHandler.New,
	admissionHandler.New,
	adminHandler.New,
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

// InitializeAdminService builds the admin account service used by cmd/admin.
func InitializeAdminService() adminService.Admin {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		adminRepository.New,
		adminService.New,
	)

	return nil
}
