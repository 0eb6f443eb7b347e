// Package catalog provides the product catalog bounded context module.
package catalog

import (
	"timeless_backend/internal/catalog/handler"
	"timeless_backend/internal/catalog/repository"
	"timeless_backend/internal/catalog/service"
	apphttp "timeless_backend/internal/http"
	"timeless_backend/platform/logger"
	"timeless_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/products", m.handler.ListProducts)
	ctx.V1.GET("/products/featured", m.handler.ListFeaturedProducts)
	ctx.V1.GET("/products/:id", m.handler.GetProductByID)

	adminGroup := ctx.Admin.Group("/products")
	adminGroup.POST("", m.handler.CreateProduct)
	adminGroup.PUT("/:id", m.handler.UpdateProduct)
	adminGroup.DELETE("/:id", m.handler.DeleteProduct)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
