package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Identity is the subset of ID-token claims the application cares about.
type Identity struct {
	// Email is the verified email address. Always non-empty.
	Email string

	// Name is the display name claim, or the local part of the email when
	// the token carries no name.
	Name string
}

// CredentialVerifier verifies an identity-provider credential and extracts
// the caller's identity. Implementations must reject missing, malformed,
// expired, and wrong-audience credentials with ErrInvalidCredential.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

// GoogleVerifier implements CredentialVerifier for Google ID tokens.
// Tokens are validated against Google's published signing keys and the
// configured OAuth client ID as audience.
type GoogleVerifier struct {
	audience  string
	validator *idtoken.Validator
}

// NewGoogleVerifier creates a GoogleVerifier for the given OAuth client ID.
func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	if clientID == "" {
		return nil, fmt.Errorf("google client ID cannot be empty")
	}

	validator, err := idtoken.NewValidator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create ID token validator: %w", err)
	}

	return &GoogleVerifier{
		audience:  clientID,
		validator: validator,
	}, nil
}

// Ensure GoogleVerifier implements CredentialVerifier
var _ CredentialVerifier = (*GoogleVerifier)(nil)

// Verify implements CredentialVerifier.Verify
func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, ErrMissingToken
	}

	payload, err := v.validator.Validate(ctx, credential, v.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrMissingEmail
	}

	name, _ := payload.Claims["name"].(string)

	return &Identity{Email: email, Name: name}, nil
}
