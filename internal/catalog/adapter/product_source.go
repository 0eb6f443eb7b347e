// Package adapter exposes catalog data to other bounded contexts behind
// their own interfaces, keeping the contexts decoupled from catalog types.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"timeless_backend/internal/cart/service"
	"timeless_backend/internal/catalog/repository"
)

// ProductSource adapts the catalog repository to the cart's product lookup.
type ProductSource struct {
	repo repository.Repository
}

// NewProductSource creates a cart product source backed by the catalog.
func NewProductSource(repo repository.Repository) *ProductSource {
	return &ProductSource{repo: repo}
}

// GetProduct resolves a product by id for add-to-cart.
func (a *ProductSource) GetProduct(ctx context.Context, id uuid.UUID) (service.CatalogProduct, error) {
	product, err := a.repo.GetProductByID(ctx, id)
	if err != nil {
		return service.CatalogProduct{}, err
	}

	return service.CatalogProduct{
		ID:       product.ID,
		Name:     product.Name,
		Brand:    product.Brand,
		PriceDZD: product.PriceDZD,
		Image:    product.Image,
		Colors:   product.Colors,
		InStock:  product.InStock,
	}, nil
}

var _ service.ProductSource = (*ProductSource)(nil)
