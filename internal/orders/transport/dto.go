package transport

import (
	"time"

	"github.com/google/uuid"
)

// SubmitOrderRequest carries the checkout form. Field-level rules are
// enforced in the service so all failures are reported together.
type SubmitOrderRequest struct {
	CustomerName  string `json:"customerName"`
	Phone         string `json:"phone"`
	Wilaya        string `json:"wilaya"`
	Commune       string `json:"commune"`
	PaymentMethod string `json:"paymentMethod"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered"`
}

type ListOrdersRequest struct {
	Status   string `form:"status" validate:"omitempty,oneof=pending confirmed shipped delivered"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type OrderItemResponse struct {
	ProductID     uuid.UUID `json:"productId"`
	Name          string    `json:"name"`
	PriceDZD      int64     `json:"priceDzd"`
	Quantity      int       `json:"quantity"`
	SelectedColor string    `json:"selectedColor,omitempty"`
}

// ReceiptResponse is the confirmation payload returned after checkout and
// replayed by the receipt endpoint.
type ReceiptResponse struct {
	OrderID       uuid.UUID           `json:"orderId"`
	DisplayCode   string              `json:"displayCode"`
	CustomerName  string              `json:"customerName"`
	Phone         string              `json:"phone"`
	Wilaya        string              `json:"wilaya"`
	Commune       string              `json:"commune"`
	PaymentMethod string              `json:"paymentMethod"`
	Items         []OrderItemResponse `json:"items"`
	SubtotalDZD   int64               `json:"subtotalDzd"`
	DiscountDZD   int64               `json:"discountDzd"`
	TotalDZD      int64               `json:"totalDzd"`
	WhatsAppURL   string              `json:"whatsappUrl"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	DisplayCode   string              `json:"displayCode"`
	CustomerName  string              `json:"customerName"`
	Phone         string              `json:"phone"`
	Wilaya        string              `json:"wilaya"`
	Commune       string              `json:"commune"`
	PaymentMethod string              `json:"paymentMethod"`
	Items         []OrderItemResponse `json:"items"`
	SubtotalDZD   int64               `json:"subtotalDzd"`
	DiscountDZD   int64               `json:"discountDzd"`
	TotalDZD      int64               `json:"totalDzd"`
	Status        string              `json:"status"`
	CreatedAt     string              `json:"createdAt"`
	UpdatedAt     string              `json:"updatedAt"`
}

type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// TrackStep is one stage of the fulfillment timeline.
type TrackStep struct {
	Status  string `json:"status"`
	Reached bool   `json:"reached"`
}

// TrackResponse is the public tracking view, addressed by display code or id.
type TrackResponse struct {
	DisplayCode string      `json:"displayCode"`
	Status      string      `json:"status"`
	Steps       []TrackStep `json:"steps"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}
