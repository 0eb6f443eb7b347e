package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"timeless_backend/platform/apperr"
)

const productNotFoundMessage = "product not found"

const productColumns = `id, name, brand, price_dzd, image, gallery_images, category,
	movement, material, description, colors, in_stock, is_featured, created_at, updated_at`

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetProductByID retrieves a product by ID.
func (r *Repo) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	row := r.pool.QueryRow(ctx, query, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts lists products with filters and pagination, newest first.
func (r *Repo) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}
	if params.InStock != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("in_stock = $%d", argIdx))
		args = append(args, *params.InStock)
		argIdx++
	}
	if params.Featured != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("is_featured = $%d", argIdx))
		args = append(args, *params.Featured)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products rows: %w", err)
	}

	return products, total, nil
}

// CreateProduct creates a product.
func (r *Repo) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	query := fmt.Sprintf(`
		INSERT INTO products (name, brand, price_dzd, image, gallery_images, category,
			movement, material, description, colors, in_stock, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s`, productColumns)

	row := r.pool.QueryRow(ctx, query,
		params.Name, params.Brand, params.PriceDZD, params.Image, params.GalleryImages,
		params.Category, params.Movement, params.Material, params.Description,
		params.Colors, params.InStock, params.IsFeatured,
	)
	product, err := scanProduct(row)
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct updates a product.
func (r *Repo) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	query := fmt.Sprintf(`
		UPDATE products
		SET name = COALESCE($2, name),
			brand = COALESCE($3, brand),
			price_dzd = COALESCE($4, price_dzd),
			image = COALESCE($5, image),
			gallery_images = COALESCE($6, gallery_images),
			category = COALESCE($7, category),
			movement = COALESCE($8, movement),
			material = COALESCE($9, material),
			description = COALESCE($10, description),
			colors = COALESCE($11, colors),
			in_stock = COALESCE($12, in_stock),
			is_featured = COALESCE($13, is_featured),
			updated_at = now()
		WHERE id = $1
		RETURNING %s`, productColumns)

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Brand, params.PriceDZD, params.Image,
		params.GalleryImages, params.Category, params.Movement, params.Material,
		params.Description, params.Colors, params.InStock, params.IsFeatured,
	)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// DeleteProduct deletes a product.
func (r *Repo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var product Product
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&product.ID, &product.Name, &product.Brand, &product.PriceDZD, &product.Image,
		&product.GalleryImages, &product.Category, &product.Movement, &product.Material,
		&product.Description, &product.Colors, &product.InStock, &product.IsFeatured,
		&createdAt, &updatedAt,
	); err != nil {
		return Product{}, err
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}
