package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid user creation
	user, err := NewUser("test@example.com", "securepassword123")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected email %s, got %s", "test@example.com", user.Email)
	}

	if user.Username != "test" {
		t.Errorf("Expected username derived from email local part, got %s", user.Username)
	}

	if user.HashedPassword != "" {
		t.Error("Expected empty hashed password before hashing")
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test empty email
	_, err = NewUser("", "securepassword123")
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	// Test invalid email format
	_, err = NewUser("not-an-email", "securepassword123")
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test password too short
	_, err = NewUser("test@example.com", "short")
	if err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	// Test password too long
	_, err = NewUser("test@example.com", strings.Repeat("x", 73))
	if err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestNewExternalUser(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test with explicit name
	user, err := NewExternalUser("jane@example.com", "Jane Doe")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Username != "Jane Doe" {
		t.Errorf("Expected username %q, got %q", "Jane Doe", user.Username)
	}
	if user.Password != "" || user.HashedPassword != "" {
		t.Error("Expected external user to carry no password")
	}

	// Test username defaulting to email local part
	user, err = NewExternalUser("jane@example.com", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Username != "jane" {
		t.Errorf("Expected username %q, got %q", "jane", user.Username)
	}

	// External users validate without a password
	if err := user.Validate(); err != nil {
		t.Errorf("Expected external user to validate, got %v", err)
	}

	// Test empty email
	_, err = NewExternalUser("", "Jane Doe")
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	// Test invalid email
	_, err = NewExternalUser("jane@invalid", "Jane Doe")
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}
}

func TestUsernameFromEmail(t *testing.T) {
	t.Parallel() // Enable parallel execution
	cases := map[string]string{
		"jane@example.com":     "jane",
		"j.doe+tag@mail.co.uk": "j.doe+tag",
		"no-at-sign":           "no-at-sign",
		"@leading.com":         "@leading.com",
	}
	for input, want := range cases {
		if got := UsernameFromEmail(input); got != want {
			t.Errorf("UsernameFromEmail(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestValidateEmailFormat(t *testing.T) {
	t.Parallel() // Enable parallel execution
	valid := []string{
		"test@example.com",
		"user.name@sub.domain.org",
		"a@b.co",
	}
	for _, email := range valid {
		if !validateEmailFormat(email) {
			t.Errorf("Expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"user@",
		"user@nodot",
		"user@trailing.",
	}
	for _, email := range invalid {
		if validateEmailFormat(email) {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}
