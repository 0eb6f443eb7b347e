// Package orders provides the checkout and fulfillment bounded context.
package orders

import (
	apphttp "timeless_backend/internal/http"

	"timeless_backend/internal/events"
	"timeless_backend/internal/orders/handler"
	"timeless_backend/internal/orders/receipt"
	"timeless_backend/internal/orders/repository"
	"timeless_backend/internal/orders/service"
	"timeless_backend/platform/config"
	"timeless_backend/platform/logger"
	"timeless_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the orders bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the orders module.
func NewModule(pool *pgxpool.Pool, receipts receipt.Store, carts service.CartAccess, bus events.Bus, cfg config.StorefrontConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, receipts, carts, bus, cfg, log)

	return &Module{
		handler: handler.New(svc, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "orders"
}

// RegisterRoutes mounts order routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	orders := ctx.V1.Group("/orders")
	orders.POST("", m.handler.Submit)
	orders.GET("/receipt", m.handler.Receipt)
	orders.GET("/wilayas", m.handler.Wilayas)
	orders.GET("/track/:code", m.handler.Track)
	orders.GET("/:code/qr", m.handler.WhatsAppQR)

	admin := ctx.Admin.Group("/orders")
	admin.GET("", m.handler.List)
	admin.GET("/:id", m.handler.GetOrder)
	admin.PATCH("/:id/status", m.handler.UpdateStatus)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
