package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"timeless_backend/internal/orders/service"
	"timeless_backend/internal/orders/transport"
	"timeless_backend/platform/httpkit"
	"timeless_backend/platform/validator"
)

// cartTokenHeader identifies the shopper's cart for checkout and receipts.
const cartTokenHeader = "X-Cart-Token"

const qrSize = 256

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidOrderID   = "invalid order id"
	msgMissingCartToken = "missing cart token"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new orders handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Submit places an order from the shopper's current cart.
// POST /api/v1/orders
func (h *Handler) Submit(c *gin.Context) {
	token := c.GetHeader(cartTokenHeader)
	if _, err := uuid.Parse(token); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMissingCartToken, nil)
		return
	}

	var req transport.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), token, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Receipt replays the shopper's last order confirmation.
// GET /api/v1/orders/receipt
func (h *Handler) Receipt(c *gin.Context) {
	token := c.GetHeader(cartTokenHeader)
	if _, err := uuid.Parse(token); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMissingCartToken, nil)
		return
	}

	result, err := h.svc.Receipt(c.Request.Context(), token)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Track returns the public fulfillment timeline for an order reference.
// GET /api/v1/orders/track/:code
func (h *Handler) Track(c *gin.Context) {
	result, err := h.svc.Track(c.Request.Context(), c.Param("code"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// WhatsAppQR renders the order's WhatsApp hand-off URL as a PNG QR code for
// the printable receipt.
// GET /api/v1/orders/:code/qr
func (h *Handler) WhatsAppQR(c *gin.Context) {
	link, err := h.svc.WhatsAppURL(c.Request.Context(), c.Param("code"))
	if httpkit.HandleError(c, err) {
		return
	}

	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to render qr code", nil)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// List returns a page of orders for the admin dashboard.
// GET /api/v1/admin/orders
func (h *Handler) List(c *gin.Context) {
	var req transport.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetOrder returns one order with items for the admin detail view.
// GET /api/v1/admin/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidOrderID, nil)
		return
	}

	result, err := h.svc.GetOrder(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateStatus advances an order through the fulfillment pipeline.
// PATCH /api/v1/admin/orders/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidOrderID, nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	adminID, ok := httpkit.MustGetAdminID(c)
	if !ok {
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status, adminID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Wilayas returns the selectable wilaya list for the checkout form.
// GET /api/v1/orders/wilayas
func (h *Handler) Wilayas(c *gin.Context) {
	httpkit.OK(c, gin.H{"wilayas": service.Wilayas()})
}
