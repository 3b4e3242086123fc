package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"symptom-helper-server/internal/config"
	"symptom-helper-server/internal/prompt"
)

const anthropicVersion = "2023-06-01"

// -- Request/Response Structures --

type claudeRequest struct {
	Model       string          `json:"model"`
	System      string          `json:"system"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string               `json:"role"`
	Content []claudeContentBlock `json:"content"`
}

type claudeContentBlock struct {
	Type   string             `json:"type"`
	Text   string             `json:"text,omitempty"`
	Source *claudeImageSource `json:"source,omitempty"`
}

type claudeImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// invokeClaude calls the Anthropic messages endpoint with the x-api-key
// and anthropic-version headers. The system prompt is a top-level
// field; image attachments become base64 source blocks.
func (c *Client) invokeClaude(ctx context.Context, pc config.ProviderConfig, systemPrompt string, msg prompt.UserMessage) (string, error) {
	content := []claudeContentBlock{{Type: "text", Text: msg.Text}}
	if msg.Image != nil {
		content = append(content, claudeContentBlock{
			Type: "image",
			Source: &claudeImageSource{
				Type:      "base64",
				MediaType: msg.Image.MimeType,
				Data:      msg.Image.Base64,
			},
		})
	}

	payload := claudeRequest{
		Model:       pc.Model,
		System:      systemPrompt,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages:    []claudeMessage{{Role: "user", Content: content}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pc.Endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", pc.APIKey)
	req.Header.Set("Anthropic-Version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	// A malformed body leaves the envelope zero-valued so the generic
	// failure paths below apply.
	var response claudeResponse
	_ = json.Unmarshal(body, &response)

	if resp.StatusCode != http.StatusOK {
		message := response.Error.Message
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("%w: %s", ErrRequestFailed, message)
	}

	var sb strings.Builder
	for _, block := range response.Content {
		if block.Type != "text" || block.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(block.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
