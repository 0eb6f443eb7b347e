// Package reviews provides the product review bounded context.
package reviews

import (
	apphttp "timeless_backend/internal/http"

	"timeless_backend/internal/reviews/handler"
	"timeless_backend/internal/reviews/repository"
	"timeless_backend/internal/reviews/service"
	"timeless_backend/platform/logger"
	"timeless_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the reviews bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the reviews module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)

	return &Module{
		handler: handler.New(svc, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "reviews"
}

// RegisterRoutes mounts review routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/products/:id/reviews", m.handler.ListByProduct)
	ctx.V1.POST("/reviews", m.handler.Create)
	ctx.Admin.DELETE("/reviews/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
