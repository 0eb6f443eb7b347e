package transport

import "github.com/google/uuid"

// Products

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Brand         string   `json:"brand" validate:"required,min=1,max=100"`
	PriceDZD      int64    `json:"priceDzd" validate:"required,min=1"`
	Image         string   `json:"image" validate:"omitempty,url,max=500"`
	GalleryImages []string `json:"galleryImages" validate:"omitempty,dive,url,max=500"`
	Category      string   `json:"category" validate:"required,oneof=men women smart accessories"`
	Movement      string   `json:"movement" validate:"required,oneof=automatic quartz"`
	Material      string   `json:"material" validate:"required,oneof=leather metal rubber"`
	Description   string   `json:"description" validate:"omitempty,max=2000"`
	Colors        []string `json:"colors" validate:"omitempty,dive,min=1,max=50"`
	InStock       bool     `json:"inStock"`
	IsFeatured    bool     `json:"isFeatured"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Brand         *string  `json:"brand,omitempty" validate:"omitempty,min=1,max=100"`
	PriceDZD      *int64   `json:"priceDzd,omitempty" validate:"omitempty,min=1"`
	Image         *string  `json:"image,omitempty" validate:"omitempty,url,max=500"`
	GalleryImages []string `json:"galleryImages,omitempty" validate:"omitempty,dive,url,max=500"`
	Category      *string  `json:"category,omitempty" validate:"omitempty,oneof=men women smart accessories"`
	Movement      *string  `json:"movement,omitempty" validate:"omitempty,oneof=automatic quartz"`
	Material      *string  `json:"material,omitempty" validate:"omitempty,oneof=leather metal rubber"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Colors        []string `json:"colors,omitempty" validate:"omitempty,dive,min=1,max=50"`
	InStock       *bool    `json:"inStock,omitempty"`
	IsFeatured    *bool    `json:"isFeatured,omitempty"`
}

type ListProductsRequest struct {
	Search   string `form:"search" validate:"max=100"`
	Category string `form:"category" validate:"omitempty,oneof=men women smart accessories"`
	InStock  *bool  `form:"inStock"`
	Featured *bool  `form:"featured"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	PriceDZD      int64     `json:"priceDzd"`
	Image         string    `json:"image"`
	GalleryImages []string  `json:"galleryImages"`
	Category      string    `json:"category"`
	Movement      string    `json:"movement"`
	Material      string    `json:"material"`
	Description   string    `json:"description"`
	Colors        []string  `json:"colors"`
	InStock       bool      `json:"inStock"`
	IsFeatured    bool      `json:"isFeatured"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}
