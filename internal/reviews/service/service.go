// Package service implements review listing and moderation.
package service

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"timeless_backend/internal/reviews/repository"
	"timeless_backend/internal/reviews/transport"
	"timeless_backend/platform/logger"
)

// Service provides review business logic.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new reviews service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListByProduct returns a product's reviews with the average rating rounded
// to one decimal.
func (s *Service) ListByProduct(ctx context.Context, productID uuid.UUID) (transport.ReviewListResponse, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return transport.ReviewListResponse{}, err
	}

	out := make([]transport.ReviewResponse, 0, len(reviews))
	var sum int
	for _, review := range reviews {
		sum += review.Rating
		out = append(out, toReviewResponse(review))
	}

	var average float64
	if len(reviews) > 0 {
		average = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}

	return transport.ReviewListResponse{Reviews: out, AverageRating: average}, nil
}

// Create stores a new review.
func (s *Service) Create(ctx context.Context, req transport.CreateReviewRequest) (transport.ReviewResponse, error) {
	review, err := s.repo.Create(ctx, repository.CreateReviewParams{
		ProductID:     req.ProductID,
		UserName:      strings.TrimSpace(req.UserName),
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
		ReviewerImage: strings.TrimSpace(req.ReviewerImage),
	})
	if err != nil {
		return transport.ReviewResponse{}, err
	}
	return toReviewResponse(review), nil
}

// Delete removes a review.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func toReviewResponse(review repository.Review) transport.ReviewResponse {
	return transport.ReviewResponse{
		ID:            review.ID,
		ProductID:     review.ProductID,
		UserName:      review.UserName,
		Rating:        review.Rating,
		Comment:       review.Comment,
		ReviewerImage: review.ReviewerImage,
		CreatedAt:     review.CreatedAt,
	}
}
