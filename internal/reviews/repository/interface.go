package repository

import (
	"context"

	"github.com/google/uuid"
)

// Review is a customer review attached to a product.
type Review struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	UserName      string
	Rating        int
	Comment       string
	ReviewerImage string
	CreatedAt     string
}

// CreateReviewParams carries the fields for a new review.
type CreateReviewParams struct {
	ProductID     uuid.UUID
	UserName      string
	Rating        int
	Comment       string
	ReviewerImage string
}

// Repository defines persistence operations for reviews.
type Repository interface {
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
	Create(ctx context.Context, params CreateReviewParams) (Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
