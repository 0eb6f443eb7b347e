package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"timeless_backend/internal/catalog/repository"
	"timeless_backend/internal/catalog/transport"
	"timeless_backend/platform/logger"
)

// Service provides business logic for the catalog.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GetProductByID retrieves a product by ID.
func (s *Service) GetProductByID(ctx context.Context, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

// ListProductsWithFilters retrieves products with search and pagination.
func (s *Service) ListProductsWithFilters(ctx context.Context, req transport.ListProductsRequest) (transport.ProductListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	params := repository.ListProductsParams{
		Search:   strings.TrimSpace(req.Search),
		Category: strings.TrimSpace(req.Category),
		InStock:  req.InStock,
		Featured: req.Featured,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	}

	items, total, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	return toProductListResponse(items, total, page, pageSize), nil
}

// CreateProduct creates a new product.
func (s *Service) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	product, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		Name:          strings.TrimSpace(req.Name),
		Brand:         strings.TrimSpace(req.Brand),
		PriceDZD:      req.PriceDZD,
		Image:         strings.TrimSpace(req.Image),
		GalleryImages: req.GalleryImages,
		Category:      req.Category,
		Movement:      req.Movement,
		Material:      req.Material,
		Description:   strings.TrimSpace(req.Description),
		Colors:        req.Colors,
		InStock:       req.InStock,
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product created", "id", product.ID, "name", product.Name)
	return toProductResponse(product), nil
}

// UpdateProduct updates an existing product.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	name := req.Name
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		name = &trimmed
	}

	product, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:            id,
		Name:          name,
		Brand:         req.Brand,
		PriceDZD:      req.PriceDZD,
		Image:         req.Image,
		GalleryImages: req.GalleryImages,
		Category:      req.Category,
		Movement:      req.Movement,
		Material:      req.Material,
		Description:   req.Description,
		Colors:        req.Colors,
		InStock:       req.InStock,
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product updated", "id", product.ID, "name", product.Name)
	return toProductResponse(product), nil
}

// DeleteProduct deletes a product.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.log.Info("product deleted", "id", id)
	return nil
}

func toProductResponse(p repository.Product) transport.ProductResponse {
	gallery := p.GalleryImages
	if gallery == nil {
		gallery = []string{}
	}
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}

	return transport.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		PriceDZD:      p.PriceDZD,
		Image:         p.Image,
		GalleryImages: gallery,
		Category:      p.Category,
		Movement:      p.Movement,
		Material:      p.Material,
		Description:   p.Description,
		Colors:        colors,
		InStock:       p.InStock,
		IsFeatured:    p.IsFeatured,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductListResponse(items []repository.Product, total, page, pageSize int) transport.ProductListResponse {
	responses := make([]transport.ProductResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toProductResponse(item))
	}

	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}

	return transport.ProductListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
