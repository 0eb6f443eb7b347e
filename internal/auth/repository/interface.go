package repository

import (
	"context"

	"github.com/google/uuid"
)

// Admin is a dashboard operator account.
type Admin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    string
}

// Repository defines persistence operations for admin accounts.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (Admin, error)
	Create(ctx context.Context, email, passwordHash string) (Admin, error)
}
