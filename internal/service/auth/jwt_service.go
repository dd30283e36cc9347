// Package auth provides the authentication building blocks of the API:
// signed session tokens, password verification, and identity-provider
// credential verification.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// JWTService defines operations for managing the signed session tokens that
// back authenticated sessions. A token is handed to the client in an
// HttpOnly cookie (or used as a bearer token) and validated on every
// protected request.
type JWTService interface {
	// GenerateToken creates a signed session token for the given user.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns an error if validation fails (expired, invalid
	// signature, malformed, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated content of a session token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID
}
