// Package auth provides admin authentication for the dashboard.
package auth

import (
	apphttp "timeless_backend/internal/http"

	"timeless_backend/internal/auth/handler"
	"timeless_backend/internal/auth/repository"
	"timeless_backend/internal/auth/service"
	"timeless_backend/platform/config"
	"timeless_backend/platform/logger"
	"timeless_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer, used by seeding tooling.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes. Login sits behind the stricter auth rate
// limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/auth")
	group.Use(ctx.AuthRateLimiter.RateLimit())
	group.POST("/login", m.handler.Login)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
