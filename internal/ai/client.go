package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"symptom-helper-server/internal/config"
	"symptom-helper-server/internal/prompt"
)

// Provider names, also used in responses and aggregated error messages.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
	ProviderClaude = "claude"
)

// fallbackOrder is the fixed priority order for provider attempts. It
// is a business rule, independent of which providers are configured.
var fallbackOrder = []string{ProviderGemini, ProviderGroq, ProviderClaude}

// Outcome is the result of a successful provider call.
type Outcome struct {
	Provider string
	Text     string
}

// Client calls the upstream AI providers. It holds only read-only
// configuration and an HTTP client, so it is safe for concurrent use.
type Client struct {
	cfg        config.ProvidersConfig
	httpClient *http.Client
}

// NewClient creates a provider client. Passing a nil httpClient uses a
// default client with the configured timeout; tests inject their own.
func NewClient(cfg config.ProvidersConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.TimeoutSeconds
		if timeout == 0 {
			timeout = 60
		}
		httpClient = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Enabled reports whether at least one provider can be attempted.
func (c *Client) Enabled() bool {
	return c.cfg.AnyConfigured()
}

// RequestWithFallback tries each configured provider in the fixed
// priority order, returning the first success. Attempts are strictly
// sequential and one-shot: a provider is never retried, and once one
// succeeds no further provider is called. On total failure the error
// lists every attempted provider with its reason.
func (c *Client) RequestWithFallback(ctx context.Context, systemPrompt string, msg prompt.UserMessage) (Outcome, error) {
	if c.httpClient == nil {
		return Outcome{}, ErrNoTransport
	}

	var failures []string
	attempted := false

	for _, name := range fallbackOrder {
		pc := c.providerConfig(name)
		if pc.APIKey == "" {
			continue
		}
		attempted = true

		text, err := c.invoke(ctx, name, pc, systemPrompt, msg)
		if err == nil {
			return Outcome{Provider: name, Text: text}, nil
		}
		failures = append(failures, fmt.Sprintf("%s: %s", name, err.Error()))
	}

	if !attempted {
		return Outcome{}, ErrNoProvidersConfigured
	}
	return Outcome{}, fmt.Errorf("%w: %s", ErrAllProvidersFailed, strings.Join(failures, "; "))
}

func (c *Client) providerConfig(name string) config.ProviderConfig {
	switch name {
	case ProviderGemini:
		return c.cfg.Gemini
	case ProviderGroq:
		return c.cfg.Groq
	case ProviderClaude:
		return c.cfg.Claude
	}
	return config.ProviderConfig{}
}

func (c *Client) invoke(ctx context.Context, name string, pc config.ProviderConfig, systemPrompt string, msg prompt.UserMessage) (string, error) {
	switch name {
	case ProviderGemini:
		return c.invokeGemini(ctx, pc, systemPrompt, msg)
	case ProviderGroq:
		return c.invokeGroq(ctx, pc, systemPrompt, msg)
	case ProviderClaude:
		return c.invokeClaude(ctx, pc, systemPrompt, msg)
	}
	return "", fmt.Errorf("%w: unknown provider %q", ErrRequestFailed, name)
}
