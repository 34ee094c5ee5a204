package services

import (
	"context"
	"time"

	"demoday/internal/domain"
)

type authService struct {
	hasher       domain.PasswordHasher
	issuer       domain.TokenIssuer
	passwordHash string
	passwordSalt string
	tokenTTL     time.Duration
}

// NewAuthService returns an AuthService for the single admin credential.
// passwordHash and passwordSalt come from configuration.
func NewAuthService(hasher domain.PasswordHasher, issuer domain.TokenIssuer, passwordHash, passwordSalt string, tokenTTL time.Duration) domain.AuthService {
	return &authService{
		hasher:       hasher,
		issuer:       issuer,
		passwordHash: passwordHash,
		passwordSalt: passwordSalt,
		tokenTTL:     tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, password string) (string, error) {
	if s.passwordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.passwordHash, s.passwordSalt, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.issuer.Issue("admin", s.tokenTTL)
}
