package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned when an admin login fails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AuthService defines admin authentication.
type AuthService interface {
	// Login verifies the admin password and returns a bearer token.
	// Returns ErrInvalidCredentials on mismatch.
	Login(ctx context.Context, password string) (token string, err error)
}
