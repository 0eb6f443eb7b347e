// Package service implements admin authentication for the dashboard.
package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"timeless_backend/internal/auth/password"
	"timeless_backend/internal/auth/repository"
	"timeless_backend/internal/auth/transport"
	"timeless_backend/platform/apperr"
	"timeless_backend/platform/config"
	"timeless_backend/platform/logger"
)

const accessTokenType = "access"

// Credentials errors are deliberately indistinguishable: a missing account
// and a wrong password return the same message.
const invalidCredentialsMessage = "invalid credentials"

// Service provides admin authentication.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Login verifies the credentials and issues a signed access token.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	admin, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return transport.LoginResponse{}, apperr.Unauthorized(invalidCredentialsMessage)
	}

	if err := password.Compare(admin.PasswordHash, req.Password); err != nil {
		return transport.LoginResponse{}, apperr.Unauthorized(invalidCredentialsMessage)
	}

	ttl := s.cfg.GetAccessTokenTTL()
	token, err := s.signJWT(admin.ID, admin.Email, ttl)
	if err != nil {
		return transport.LoginResponse{}, apperr.Wrap(apperr.KindInternal, "failed to issue token", err)
	}

	return transport.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(ttl.Seconds()),
		Email:       admin.Email,
	}, nil
}

// Register creates an admin account with a hashed password. Exposed for
// seeding and operator tooling, not mounted on a public route.
func (s *Service) Register(ctx context.Context, email, plainPassword string) (uuid.UUID, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return uuid.Nil, err
	}

	admin, err := s.repo.Create(ctx, email, hash)
	if err != nil {
		return uuid.Nil, err
	}
	return admin.ID, nil
}

func (s *Service) signJWT(adminID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   adminID.String(),
		"email": email,
		"type":  accessTokenType,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
