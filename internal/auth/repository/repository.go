package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"timeless_backend/platform/apperr"
)

// Repo implements the admins repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new admins repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByEmail retrieves an admin by email, case-insensitively.
func (r *Repo) GetByEmail(ctx context.Context, email string) (Admin, error) {
	var admin Admin
	var createdAt time.Time

	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admins WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email),
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, apperr.NotFound("admin not found")
		}
		return Admin{}, fmt.Errorf("get admin by email: %w", err)
	}

	admin.CreatedAt = createdAt.Format(time.RFC3339)
	return admin, nil
}

// Create inserts an admin account.
func (r *Repo) Create(ctx context.Context, email, passwordHash string) (Admin, error) {
	var admin Admin
	var createdAt time.Time

	err := r.pool.QueryRow(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES (lower($1), $2)
		RETURNING id, email, password_hash, created_at`,
		strings.TrimSpace(email), passwordHash,
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &createdAt)
	if err != nil {
		return Admin{}, fmt.Errorf("create admin: %w", err)
	}

	admin.CreatedAt = createdAt.Format(time.RFC3339)
	return admin, nil
}
