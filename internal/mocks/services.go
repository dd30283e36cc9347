package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskline/taskline-api/internal/analysis"
	"github.com/taskline/taskline-api/internal/service/auth"
)

// MockJWTService is a configurable fake of auth.JWTService.
type MockJWTService struct {
	// Token is returned by GenerateToken.
	Token string

	// UserID is returned in the claims by ValidateToken.
	UserID uuid.UUID

	// GenerateErr, when non-nil, is returned by GenerateToken.
	GenerateErr error

	// ValidateErr, when non-nil, is returned by ValidateToken.
	ValidateErr error
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements auth.JWTService.GenerateToken
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateErr != nil {
		return "", m.GenerateErr
	}
	return m.Token, nil
}

// ValidateToken implements auth.JWTService.ValidateToken
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateErr != nil {
		return nil, m.ValidateErr
	}
	return &auth.Claims{UserID: m.UserID}, nil
}

// MockPasswordVerifier is a configurable fake of auth.PasswordVerifier.
type MockPasswordVerifier struct {
	// Err, when non-nil, is returned by Compare.
	Err error
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements auth.PasswordVerifier.Compare
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	return m.Err
}

// MockCredentialVerifier is a configurable fake of auth.CredentialVerifier.
type MockCredentialVerifier struct {
	// Identity is returned on success.
	Identity *auth.Identity

	// Err, when non-nil, is returned instead.
	Err error

	// LastCredential records the credential passed to the most recent
	// Verify call.
	LastCredential string
}

var _ auth.CredentialVerifier = (*MockCredentialVerifier)(nil)

// Verify implements auth.CredentialVerifier.Verify
func (m *MockCredentialVerifier) Verify(ctx context.Context, credential string) (*auth.Identity, error) {
	m.LastCredential = credential
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Identity, nil
}

// MockAnalyzer is a configurable fake of analysis.Analyzer.
type MockAnalyzer struct {
	// Summary is returned on success.
	Summary string

	// Err, when non-nil, is returned instead.
	Err error

	// LastTasks records the tasks passed to the most recent Analyze call.
	LastTasks []analysis.TaskSummary
}

var _ analysis.Analyzer = (*MockAnalyzer)(nil)

// Analyze implements analysis.Analyzer.Analyze
func (m *MockAnalyzer) Analyze(ctx context.Context, tasks []analysis.TaskSummary) (string, error) {
	m.LastTasks = tasks
	if m.Err != nil {
		return "", m.Err
	}
	return m.Summary, nil
}
