// Package redact strips sensitive material from strings before they reach
// logs or error responses: connection strings, bearer credentials, signed
// tokens, API keys, and email addresses.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Bearer credentials in headers or error text
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+`)

	// Three-part base64url-encoded signed tokens (JWTs, Google ID tokens)
	signedTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// key=value style secrets
	apiKeyRegex = regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String returns s with all recognized sensitive fragments replaced by
// placeholders.
func String(s string) string {
	if s == "" {
		return s
	}

	s = dbConnRegex.ReplaceAllString(s, RedactedCredentialPlaceholder+"@")
	s = bearerRegex.ReplaceAllString(s, RedactedCredentialPlaceholder)
	s = signedTokenRegex.ReplaceAllString(s, RedactedCredentialPlaceholder)
	s = apiKeyRegex.ReplaceAllString(s, "${1}${2}"+RedactedKeyPlaceholder)
	s = emailRegex.ReplaceAllString(s, RedactedEmailPlaceholder)

	return s
}

// Error redacts an error's message. Returns the empty string for nil errors.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
