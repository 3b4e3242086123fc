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

// -- Request/Response Structures --

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// groqMessage carries either a plain string or a block array as its
// content, matching the OpenAI-compatible chat schema.
type groqMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type groqContentBlock struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *groqImageURL `json:"image_url,omitempty"`
}

type groqImageURL struct {
	URL string `json:"url"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error json.RawMessage `json:"error"`
}

// invokeGroq calls the Groq OpenAI-compatible chat completions
// endpoint with bearer auth. Image attachments become a data-URI
// image_url block alongside the text block.
func (c *Client) invokeGroq(ctx context.Context, pc config.ProviderConfig, systemPrompt string, msg prompt.UserMessage) (string, error) {
	var userContent interface{} = msg.Text
	if msg.Image != nil {
		userContent = []groqContentBlock{
			{Type: "text", Text: msg.Text},
			{Type: "image_url", ImageURL: &groqImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", msg.Image.MimeType, msg.Image.Base64),
			}},
		}
	}

	payload := groqRequest{
		Model: pc.Model,
		Messages: []groqMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
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
	req.Header.Set("Authorization", "Bearer "+pc.APIKey)

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
	var response groqResponse
	_ = json.Unmarshal(body, &response)

	if resp.StatusCode != http.StatusOK {
		message := extractGroqError(response.Error)
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("%w: %s", ErrRequestFailed, message)
	}

	text := ""
	if len(response.Choices) > 0 {
		text = extractGroqContent(response.Choices[0].Message.Content)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// extractGroqError handles both error envelopes the API emits: an
// object with a message field, or a bare string.
func extractGroqError(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// extractGroqContent handles both content shapes: a plain string or an
// array of typed blocks whose text fragments are joined with newlines.
func extractGroqContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var blocks []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var parts []string
		for _, b := range blocks {
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}
