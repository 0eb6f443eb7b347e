// Package service implements the cart store operations: single source of
// truth for the shopper's intent, with write-through snapshots for
// durability across sessions. Snapshot failures degrade to an empty cart and
// are logged; they never fail a request on their own.
package service

import (
	"context"

	"github.com/google/uuid"

	"timeless_backend/internal/cart/domain"
	"timeless_backend/internal/cart/snapshot"
	"timeless_backend/internal/cart/transport"
	"timeless_backend/platform/apperr"
	"timeless_backend/platform/logger"
)

// CatalogProduct is the slice of a catalog product the cart needs when a line
// is created.
type CatalogProduct struct {
	ID       uuid.UUID
	Name     string
	Brand    string
	PriceDZD int64
	Image    string
	Colors   []string
	InStock  bool
}

// ProductSource resolves products at add-to-cart time. Implemented by the
// catalog adapter.
type ProductSource interface {
	GetProduct(ctx context.Context, id uuid.UUID) (CatalogProduct, error)
}

// Service provides cart business logic.
type Service struct {
	snaps    snapshot.Store
	products ProductSource
	log      *logger.Logger
}

// New creates a new cart service.
func New(snaps snapshot.Store, products ProductSource, log *logger.Logger) *Service {
	return &Service{snaps: snaps, products: products, log: log}
}

// View returns the current cart with derived totals.
func (s *Service) View(ctx context.Context, token string) (transport.CartResponse, error) {
	c := s.load(ctx, token)
	return toCartResponse(c), nil
}

// AddItem adds one unit of the product to the cart, collapsing onto an
// existing line for the same product.
func (s *Service) AddItem(ctx context.Context, token string, productID uuid.UUID, selectedColor string) (transport.CartResponse, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return transport.CartResponse{}, err
	}
	if !product.InStock {
		return transport.CartResponse{}, apperr.Conflict("product is out of stock")
	}
	if selectedColor != "" && !containsColor(product.Colors, selectedColor) {
		return transport.CartResponse{}, apperr.Validation("selected color is not available for this product")
	}

	c := s.load(ctx, token)
	c.Add(domain.Line{
		ProductID:     product.ID,
		Name:          product.Name,
		Brand:         product.Brand,
		PriceDZD:      product.PriceDZD,
		Image:         product.Image,
		SelectedColor: selectedColor,
	})
	s.save(ctx, token, c)

	return toCartResponse(c), nil
}

// UpdateQuantity sets the line's quantity exactly; zero removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, quantity int) (transport.CartResponse, error) {
	c := s.load(ctx, token)
	c.SetQuantity(productID, quantity)
	s.save(ctx, token, c)
	return toCartResponse(c), nil
}

// RemoveItem deletes the line for the product; absent products are a no-op.
func (s *Service) RemoveItem(ctx context.Context, token string, productID uuid.UUID) (transport.CartResponse, error) {
	c := s.load(ctx, token)
	c.Remove(productID)
	s.save(ctx, token, c)
	return toCartResponse(c), nil
}

// ApplyPromo applies the storefront promo code. An invalid code clears any
// applied promo and returns a validation error; checkout proceeds at full
// price in that case.
func (s *Service) ApplyPromo(ctx context.Context, token string, code string) (transport.CartResponse, error) {
	c := s.load(ctx, token)
	matched := c.ApplyPromo(code)
	s.save(ctx, token, c)

	if !matched {
		return toCartResponse(c), apperr.Validation("invalid promo code")
	}
	return toCartResponse(c), nil
}

// RemovePromo clears the applied promo code.
func (s *Service) RemovePromo(ctx context.Context, token string) (transport.CartResponse, error) {
	c := s.load(ctx, token)
	c.RemovePromo()
	s.save(ctx, token, c)
	return toCartResponse(c), nil
}

// Get returns the raw cart for the token. Used by the orders module at
// checkout.
func (s *Service) Get(ctx context.Context, token string) (domain.Cart, error) {
	return s.load(ctx, token), nil
}

// Clear empties the cart after a successful order submission.
func (s *Service) Clear(ctx context.Context, token string) error {
	if err := s.snaps.Delete(ctx, token); err != nil {
		s.log.SnapshotError("delete", token, err)
		return err
	}
	return nil
}

// load rehydrates the cart snapshot. Missing or corrupt snapshots degrade to
// an empty cart; corruption is logged.
func (s *Service) load(ctx context.Context, token string) domain.Cart {
	c, found, err := s.snaps.Load(ctx, token)
	if err != nil {
		s.log.SnapshotError("load", token, err)
		return domain.Cart{}
	}
	if !found {
		return domain.Cart{}
	}
	return c
}

// save writes through the full snapshot after a mutation. Failures are
// logged only: durability is best-effort and must not block the shopper.
func (s *Service) save(ctx context.Context, token string, c domain.Cart) {
	if err := s.snaps.Save(ctx, token, c); err != nil {
		s.log.SnapshotError("save", token, err)
	}
}

func containsColor(colors []string, color string) bool {
	for _, candidate := range colors {
		if candidate == color {
			return true
		}
	}
	return false
}

func toCartResponse(c domain.Cart) transport.CartResponse {
	lines := make([]transport.LineResponse, 0, len(c.Lines))
	for _, line := range c.Lines {
		lines = append(lines, transport.LineResponse{
			ProductID:     line.ProductID,
			Name:          line.Name,
			Brand:         line.Brand,
			PriceDZD:      line.PriceDZD,
			Image:         line.Image,
			SelectedColor: line.SelectedColor,
			Quantity:      line.Quantity,
			LineTotalDZD:  line.PriceDZD * int64(line.Quantity),
		})
	}

	return transport.CartResponse{
		Lines:        lines,
		ItemCount:    c.ItemCount(),
		SubtotalDZD:  c.Subtotal(),
		PromoApplied: c.PromoApplied,
		DiscountDZD:  c.Discount(),
		TotalDZD:     c.FinalTotal(),
	}
}
