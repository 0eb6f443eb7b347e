package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"timeless_backend/platform/apperr"
)

const reviewColumns = `id, product_id, user_name, rating, comment, reviewer_image, created_at`

// Repo implements the reviews repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reviews repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListByProduct returns a product's reviews, newest first.
func (r *Repo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`, reviewColumns)

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews rows: %w", err)
	}
	return reviews, nil
}

// Create inserts a review.
func (r *Repo) Create(ctx context.Context, params CreateReviewParams) (Review, error) {
	query := fmt.Sprintf(`
		INSERT INTO reviews (product_id, user_name, rating, comment, reviewer_image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, reviewColumns)

	row := r.pool.QueryRow(ctx, query,
		params.ProductID, params.UserName, params.Rating, params.Comment, params.ReviewerImage)
	review, err := scanReview(row)
	if err != nil {
		return Review{}, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

// Delete removes a review.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("review not found")
	}
	return nil
}

func scanReview(row pgx.Row) (Review, error) {
	var review Review
	var createdAt time.Time
	if err := row.Scan(
		&review.ID, &review.ProductID, &review.UserName, &review.Rating,
		&review.Comment, &review.ReviewerImage, &createdAt,
	); err != nil {
		return Review{}, err
	}

	review.CreatedAt = createdAt.Format(time.RFC3339)
	return review, nil
}
