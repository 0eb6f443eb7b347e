package repository

import (
	"context"

	"github.com/google/uuid"
)

// Product represents a watch in the storefront catalog. Prices are whole
// Algerian dinars.
type Product struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	Brand         string    `db:"brand"`
	PriceDZD      int64     `db:"price_dzd"`
	Image         string    `db:"image"`
	GalleryImages []string  `db:"gallery_images"`
	Category      string    `db:"category"`
	Movement      string    `db:"movement"`
	Material      string    `db:"material"`
	Description   string    `db:"description"`
	Colors        []string  `db:"colors"`
	InStock       bool      `db:"in_stock"`
	IsFeatured    bool      `db:"is_featured"`
	CreatedAt     string    `db:"created_at"`
	UpdatedAt     string    `db:"updated_at"`
}

// CreateProductParams contains data for creating a product.
type CreateProductParams struct {
	Name          string
	Brand         string
	PriceDZD      int64
	Image         string
	GalleryImages []string
	Category      string
	Movement      string
	Material      string
	Description   string
	Colors        []string
	InStock       bool
	IsFeatured    bool
}

// UpdateProductParams contains data for updating a product. Nil fields are
// left unchanged.
type UpdateProductParams struct {
	ID            uuid.UUID
	Name          *string
	Brand         *string
	PriceDZD      *int64
	Image         *string
	GalleryImages []string
	Category      *string
	Movement      *string
	Material      *string
	Description   *string
	Colors        []string
	InStock       *bool
	IsFeatured    *bool
}

// ListProductsParams defines filters for listing products.
type ListProductsParams struct {
	Search   string
	Category string
	InStock  *bool
	Featured *bool
	Offset   int
	Limit    int
}

// Repository defines catalog persistence operations.
type Repository interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
