package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"timeless_backend/internal/cart/service"
	"timeless_backend/internal/cart/transport"
	"timeless_backend/platform/httpkit"
	"timeless_backend/platform/validator"
)

// CartTokenHeader carries the shopper's opaque cart token. The server issues
// a fresh token when the client does not present a valid one, and always
// echoes the token back so the client can persist it.
const CartTokenHeader = "X-Cart-Token"

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidProductID = "invalid product id"
)

// Handler handles HTTP requests for the cart.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new cart handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// View returns the current cart.
// GET /api/v1/cart
func (h *Handler) View(c *gin.Context) {
	token := h.cartToken(c)
	result, err := h.svc.View(c.Request.Context(), token)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddItem adds one unit of a product to the cart.
// POST /api/v1/cart/items
func (h *Handler) AddItem(c *gin.Context) {
	var req transport.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	token := h.cartToken(c)
	result, err := h.svc.AddItem(c.Request.Context(), token, req.ProductID, req.SelectedColor)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateQuantity sets a line's quantity; zero removes the line.
// PATCH /api/v1/cart/items/:productId
func (h *Handler) UpdateQuantity(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProductID, nil)
		return
	}

	var req transport.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	token := h.cartToken(c)
	result, err := h.svc.UpdateQuantity(c.Request.Context(), token, productID, req.Quantity)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RemoveItem deletes a line from the cart.
// DELETE /api/v1/cart/items/:productId
func (h *Handler) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProductID, nil)
		return
	}

	token := h.cartToken(c)
	result, err := h.svc.RemoveItem(c.Request.Context(), token, productID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Clear empties the cart.
// DELETE /api/v1/cart
func (h *Handler) Clear(c *gin.Context) {
	token := h.cartToken(c)
	if err := h.svc.Clear(c.Request.Context(), token); err != nil {
		// Snapshot deletion failing still leaves the shopper able to retry.
		httpkit.Error(c, http.StatusInternalServerError, "failed to clear cart", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// ApplyPromo applies the storefront promo code to the cart.
// POST /api/v1/cart/promo
func (h *Handler) ApplyPromo(c *gin.Context) {
	var req transport.ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	token := h.cartToken(c)
	result, err := h.svc.ApplyPromo(c.Request.Context(), token, req.Code)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RemovePromo clears the applied promo code.
// DELETE /api/v1/cart/promo
func (h *Handler) RemovePromo(c *gin.Context) {
	token := h.cartToken(c)
	result, err := h.svc.RemovePromo(c.Request.Context(), token)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// cartToken returns the shopper's cart token, issuing a fresh one when the
// request carries none. The token is always echoed on the response.
func (h *Handler) cartToken(c *gin.Context) string {
	token := c.GetHeader(CartTokenHeader)
	if _, err := uuid.Parse(token); err != nil {
		token = uuid.NewString()
	}
	c.Header(CartTokenHeader, token)
	return token
}
