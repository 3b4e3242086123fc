package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	Providers   ProvidersConfig
	Upload      UploadConfig
	RateLimit   RateLimitConfig
}

// ProviderConfig holds the credentials and model selection for one
// upstream AI provider. A provider with an empty APIKey is disabled.
type ProviderConfig struct {
	APIKey   string
	Model    string
	Endpoint string
}

// ProvidersConfig groups the three supported providers.
type ProvidersConfig struct {
	Gemini ProviderConfig
	Groq   ProviderConfig
	Claude ProviderConfig

	// MaxTokens and Temperature apply to the providers whose wire
	// format carries them (Groq and Claude).
	MaxTokens      int
	Temperature    float64
	TimeoutSeconds int
}

// AnyConfigured reports whether at least one provider has a credential.
func (p ProvidersConfig) AnyConfigured() bool {
	return p.Gemini.APIKey != "" || p.Groq.APIKey != "" || p.Claude.APIKey != ""
}

// UploadConfig holds attachment upload limits.
type UploadConfig struct {
	MaxBytes int
}

// RateLimitConfig holds per-client request throttling settings.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Default upstream endpoints; overridable via env for testing.
const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultGroqEndpoint   = "https://api.groq.com/openai/v1/chat/completions"
	defaultClaudeEndpoint = "https://api.anthropic.com/v1/messages"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// GEMINI_API_KEY is the documented variable; API_KEY is a legacy
	// alias kept for existing deployments.
	geminiKey := getEnv("GEMINI_API_KEY", "")
	if geminiKey == "" {
		geminiKey = getEnv("API_KEY", "")
	}

	providers := ProvidersConfig{
		Gemini: ProviderConfig{
			APIKey:   geminiKey,
			Model:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			Endpoint: getEnv("GEMINI_ENDPOINT", defaultGeminiEndpoint),
		},
		Groq: ProviderConfig{
			APIKey:   getEnv("GROQ_API_KEY", ""),
			Model:    getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			Endpoint: getEnv("GROQ_ENDPOINT", defaultGroqEndpoint),
		},
		Claude: ProviderConfig{
			APIKey:   getEnv("ANTHROPIC_API_KEY", ""),
			Model:    getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			Endpoint: getEnv("ANTHROPIC_ENDPOINT", defaultClaudeEndpoint),
		},
	}

	maxTokens, err := strconv.Atoi(getEnv("AI_MAX_TOKENS", "1024"))
	if err != nil {
		return nil, fmt.Errorf("invalid AI_MAX_TOKENS: %w", err)
	}
	providers.MaxTokens = maxTokens

	temperature, err := strconv.ParseFloat(getEnv("AI_TEMPERATURE", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AI_TEMPERATURE: %w", err)
	}
	providers.Temperature = temperature

	timeoutSeconds, err := strconv.Atoi(getEnv("AI_TIMEOUT_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid AI_TIMEOUT_SECONDS: %w", err)
	}
	providers.TimeoutSeconds = timeoutSeconds

	maxUploadBytes, err := strconv.Atoi(getEnv("MAX_UPLOAD_BYTES", "5242880")) // 5 MiB
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:        getEnv("PORT", "3001"),
		Origin:      getEnv("ORIGIN", "http://localhost:5173"),
		Environment: getEnv("NODE_ENV", "development"),
		Providers:   providers,
		Upload:      UploadConfig{MaxBytes: maxUploadBytes},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: rps,
			Burst:             burst,
		},
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
