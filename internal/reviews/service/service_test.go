package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"timeless_backend/internal/reviews/repository"
	"timeless_backend/internal/reviews/transport"
	"timeless_backend/platform/apperr"
	"timeless_backend/platform/logger"
)

type fakeRepo struct {
	reviews []repository.Review
}

func (f *fakeRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]repository.Review, error) {
	out := make([]repository.Review, 0)
	for _, review := range f.reviews {
		if review.ProductID == productID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateReviewParams) (repository.Review, error) {
	review := repository.Review{
		ID:            uuid.New(),
		ProductID:     params.ProductID,
		UserName:      params.UserName,
		Rating:        params.Rating,
		Comment:       params.Comment,
		ReviewerImage: params.ReviewerImage,
	}
	f.reviews = append(f.reviews, review)
	return review, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, review := range f.reviews {
		if review.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("review not found")
}

func TestListByProductComputesAverage(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, logger.New("development"))
	ctx := context.Background()
	productID := uuid.New()

	for _, rating := range []int{5, 4, 4} {
		_, err := svc.Create(ctx, transport.CreateReviewRequest{
			ProductID: productID,
			UserName:  "Sara",
			Rating:    rating,
			Comment:   "ساعة رائعة",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	result, err := svc.ListByProduct(ctx, productID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Reviews) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(result.Reviews))
	}
	if result.AverageRating != 4.3 {
		t.Fatalf("expected average 4.3, got %v", result.AverageRating)
	}
}

func TestListByProductEmpty(t *testing.T) {
	svc := New(&fakeRepo{}, logger.New("development"))

	result, err := svc.ListByProduct(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Reviews) != 0 || result.AverageRating != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestCreateTrimsFields(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, logger.New("development"))

	result, err := svc.Create(context.Background(), transport.CreateReviewRequest{
		ProductID: uuid.New(),
		UserName:  "  Karim  ",
		Rating:    5,
		Comment:   "  excellent  ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.UserName != "Karim" || result.Comment != "excellent" {
		t.Fatalf("expected trimmed fields, got %+v", result)
	}
}

func TestDeleteMissingReview(t *testing.T) {
	svc := New(&fakeRepo{}, logger.New("development"))

	err := svc.Delete(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
