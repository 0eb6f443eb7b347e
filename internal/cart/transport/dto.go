package transport

import "github.com/google/uuid"

type AddItemRequest struct {
	ProductID     uuid.UUID `json:"productId" validate:"required"`
	SelectedColor string    `json:"selectedColor" validate:"omitempty,min=1,max=50"`
}

type UpdateQuantityRequest struct {
	// Zero removes the line, matching the storefront's quantity stepper.
	Quantity int `json:"quantity" validate:"min=0,max=999"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

type LineResponse struct {
	ProductID     uuid.UUID `json:"productId"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	PriceDZD      int64     `json:"priceDzd"`
	Image         string    `json:"image"`
	SelectedColor string    `json:"selectedColor,omitempty"`
	Quantity      int       `json:"quantity"`
	LineTotalDZD  int64     `json:"lineTotalDzd"`
}

type CartResponse struct {
	Lines        []LineResponse `json:"lines"`
	ItemCount    int            `json:"itemCount"`
	SubtotalDZD  int64          `json:"subtotalDzd"`
	PromoApplied bool           `json:"promoApplied"`
	DiscountDZD  int64          `json:"discountDzd"`
	TotalDZD     int64          `json:"totalDzd"`
}
