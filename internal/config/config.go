package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and session settings.
type AuthConfig struct {
	// JWTSecret signs session tokens. Minimum 32 characters.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the session token lifetime in minutes.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// GoogleClientID is the OAuth client ID expected as the audience of
	// incoming Google ID tokens.
	GoogleClientID string `mapstructure:"google_client_id" validate:"required"`
}

// LLMConfig contains the settings for the external chat-completion API used
// by the analyze endpoint.
type LLMConfig struct {
	// APIKey authenticates requests to the upstream endpoint.
	APIKey string `mapstructure:"api_key" validate:"required"`

	// Endpoint is the base URL of an OpenAI-compatible chat-completions API.
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`

	// Model is the model identifier sent with each request.
	Model string `mapstructure:"model" validate:"required"`

	// Provider is the tag reported back to clients in analyze responses.
	Provider string `mapstructure:"provider" validate:"required"`

	// TimeoutSeconds bounds each upstream request. A single attempt is
	// made per call; there are no retries.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}
