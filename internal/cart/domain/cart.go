// Package domain holds the shopping cart aggregate: an ordered list of lines
// keyed by product id, with totals derived on every read and an optional
// applied promo code. The cart is the single source of truth for what the
// shopper intends to buy; persistence is handled by the snapshot store.
package domain

import (
	"strings"

	"github.com/google/uuid"
)

// PromoCode is the single promo code honored by the storefront.
const PromoCode = "TIMELESS2025"

// promoDiscountBps is the flat discount unlocked by PromoCode, in basis points.
const promoDiscountBps = 1000

// Line is one product entry in the cart. Product fields are copied by value
// at add time so a later catalog edit cannot drift the shopper's cart.
type Line struct {
	ProductID     uuid.UUID `json:"productId"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	PriceDZD      int64     `json:"priceDzd"`
	Image         string    `json:"image"`
	SelectedColor string    `json:"selectedColor,omitempty"`
	Quantity      int       `json:"quantity"`
}

// Cart is the in-memory cart state. The zero value is an empty cart.
type Cart struct {
	Lines        []Line `json:"lines"`
	PromoApplied bool   `json:"promoApplied"`
}

// Add inserts the product as a new line with quantity 1, or increments the
// quantity of the existing line for the same product. The color selected on
// first add wins; a different color on a later add is ignored unless the line
// is removed and re-added.
func (c *Cart) Add(line Line) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity++
			return
		}
	}

	line.Quantity = 1
	c.Lines = append(c.Lines, line)
}

// Remove deletes the line for the product outright. Removing an absent
// product is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line's quantity exactly. A quantity of zero or less is
// equivalent to Remove.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart and drops any applied promo.
func (c *Cart) Clear() {
	c.Lines = nil
	c.PromoApplied = false
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Subtotal is the sum of price x quantity over all lines, recomputed on every
// call.
func (c Cart) Subtotal() int64 {
	var sum int64
	for _, line := range c.Lines {
		sum += line.PriceDZD * int64(line.Quantity)
	}
	return sum
}

// ItemCount is the sum of quantities over all lines.
func (c Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Discount is the promo discount amount, zero when no promo is applied.
func (c Cart) Discount() int64 {
	if !c.PromoApplied {
		return 0
	}
	return c.Subtotal() * promoDiscountBps / 10000
}

// FinalTotal is the subtotal minus the promo discount.
func (c Cart) FinalTotal() int64 {
	return c.Subtotal() - c.Discount()
}

// ApplyPromo matches the code against PromoCode (trimmed, case-insensitive).
// A match marks the promo applied; applying the same valid code again is
// idempotent. A non-matching code clears any applied promo and returns false.
func (c *Cart) ApplyPromo(code string) bool {
	if strings.EqualFold(strings.TrimSpace(code), PromoCode) {
		c.PromoApplied = true
		return true
	}

	c.PromoApplied = false
	return false
}

// RemovePromo clears the applied promo.
func (c *Cart) RemovePromo() {
	c.PromoApplied = false
}
