// Package cart provides the shopping cart bounded context module.
package cart

import (
	apphttp "timeless_backend/internal/http"

	"timeless_backend/internal/cart/handler"
	"timeless_backend/internal/cart/service"
	"timeless_backend/internal/cart/snapshot"
	"timeless_backend/platform/logger"
	"timeless_backend/platform/validator"
)

// Module is the cart bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the cart module. The snapshot store and
// product source are injected so production wires Redis and the catalog
// while tests wire in-memory fakes.
func NewModule(snaps snapshot.Store, products service.ProductSource, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(snaps, products, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "cart"
}

// Service returns the service layer for external use (checkout).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts cart routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/cart")
	group.GET("", m.handler.View)
	group.DELETE("", m.handler.Clear)
	group.POST("/items", m.handler.AddItem)
	group.PATCH("/items/:productId", m.handler.UpdateQuantity)
	group.DELETE("/items/:productId", m.handler.RemoveItem)
	group.POST("/promo", m.handler.ApplyPromo)
	group.DELETE("/promo", m.handler.RemovePromo)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
