package transport

import "github.com/google/uuid"

type CreateReviewRequest struct {
	ProductID     uuid.UUID `json:"productId" validate:"required"`
	UserName      string    `json:"userName" validate:"required,min=2,max=100"`
	Rating        int       `json:"rating" validate:"required,min=1,max=5"`
	Comment       string    `json:"comment" validate:"required,min=2,max=2000"`
	ReviewerImage string    `json:"reviewerImage" validate:"omitempty,url"`
}

type ReviewResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"productId"`
	UserName      string    `json:"userName"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	ReviewerImage string    `json:"reviewerImage,omitempty"`
	CreatedAt     string    `json:"createdAt"`
}

type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
}
