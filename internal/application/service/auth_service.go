package service

import (
	"context"
	"time"

	"github.com/sangkips/daybook-api/pkg/apperror"
	"github.com/sangkips/daybook-api/pkg/utils"
	"github.com/sangkips/daybook-api/pkg/validation"
)

// AuthService issues operator tokens
type AuthService struct {
	passwordHash string
	jwtManager   *utils.JWTManager
	validator    *validation.Validator
}

// NewAuthService creates a new auth service
func NewAuthService(passwordHash string, jwtManager *utils.JWTManager, validator *validation.Validator) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		jwtManager:   jwtManager,
		validator:    validator,
	}
}

// TokenInput represents the token request
type TokenInput struct {
	Password string `json:"password" validate:"required"`
}

// TokenOutput represents an issued token
type TokenOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IssueToken checks the operator password and returns a signed token
func (s *AuthService) IssueToken(ctx context.Context, input *TokenInput) (*TokenOutput, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(input.Password, s.passwordHash) {
		return nil, apperror.NewUnauthorizedError("Invalid password")
	}

	token, expiresAt, err := s.jwtManager.GenerateAccessToken()
	if err != nil {
		return nil, err
	}
	return &TokenOutput{Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken checks a bearer token
func (s *AuthService) ValidateToken(token string) error {
	if _, err := s.jwtManager.ValidateAccessToken(token); err != nil {
		return apperror.NewUnauthorizedError("Invalid or expired token")
	}
	return nil
}
