package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"symptom-helper-server/internal/config"
	"symptom-helper-server/internal/prompt"
)

// providerStub serves canned responses for all three providers from a
// single test server and records the order of calls.
type providerStub struct {
	mu    sync.Mutex
	calls []string

	geminiStatus int
	geminiBody   string
	groqStatus   int
	groqBody     string
	claudeStatus int
	claudeBody   string
}

func (s *providerStub) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *providerStub) callOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *providerStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, ":generateContent"):
			s.record(ProviderGemini)
			w.WriteHeader(s.geminiStatus)
			w.Write([]byte(s.geminiBody))
		case r.URL.Path == "/groq":
			s.record(ProviderGroq)
			w.WriteHeader(s.groqStatus)
			w.Write([]byte(s.groqBody))
		case r.URL.Path == "/claude":
			s.record(ProviderClaude)
			w.WriteHeader(s.claudeStatus)
			w.Write([]byte(s.claudeBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func stubProviders(serverURL, geminiKey, groqKey, claudeKey string) config.ProvidersConfig {
	return config.ProvidersConfig{
		Gemini: config.ProviderConfig{APIKey: geminiKey, Model: "gemini-test", Endpoint: serverURL},
		Groq:   config.ProviderConfig{APIKey: groqKey, Model: "groq-test", Endpoint: serverURL + "/groq"},
		Claude: config.ProviderConfig{APIKey: claudeKey, Model: "claude-test", Endpoint: serverURL + "/claude"},

		MaxTokens:      256,
		Temperature:    0.5,
		TimeoutSeconds: 5,
	}
}

func testMessage() prompt.UserMessage {
	return prompt.UserMessage{Text: "my child has a cough"}
}

func TestRequestWithFallbackNoProviders(t *testing.T) {
	stub := &providerStub{}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewClient(stubProviders(server.URL, "", "", ""), server.Client())

	_, err := client.RequestWithFallback(context.Background(), "system", testMessage())
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
	}
	if len(stub.callOrder()) != 0 {
		t.Fatalf("expected zero network calls, got %v", stub.callOrder())
	}
}

func TestRequestWithFallbackNoTransport(t *testing.T) {
	client := &Client{cfg: stubProviders("http://unreachable", "key", "", "")}

	_, err := client.RequestWithFallback(context.Background(), "system", testMessage())
	if !errors.Is(err, ErrNoTransport) {
		t.Fatalf("expected ErrNoTransport, got %v", err)
	}
}

func TestRequestWithFallbackFirstSuccess(t *testing.T) {
	stub := &providerStub{
		geminiStatus: http.StatusOK,
		geminiBody:   `{"candidates":[{"content":{"parts":[{"text":"All good."}]}}]}`,
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewClient(stubProviders(server.URL, "g-key", "q-key", "c-key"), server.Client())

	outcome, err := client.RequestWithFallback(context.Background(), "system", testMessage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Provider != ProviderGemini {
		t.Fatalf("expected gemini, got %s", outcome.Provider)
	}
	if outcome.Text != "All good." {
		t.Fatalf("unexpected text: %q", outcome.Text)
	}
	if calls := stub.callOrder(); len(calls) != 1 {
		t.Fatalf("expected exactly one call, got %v", calls)
	}
}

func TestRequestWithFallbackSecondSucceeds(t *testing.T) {
	stub := &providerStub{
		geminiStatus: http.StatusInternalServerError,
		geminiBody:   `{"error":{"message":"quota exceeded"}}`,
		groqStatus:   http.StatusOK,
		groqBody:     `{"choices":[{"message":{"content":"Groq fallback response"}}]}`,
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewClient(stubProviders(server.URL, "g-key", "q-key", "c-key"), server.Client())

	outcome, err := client.RequestWithFallback(context.Background(), "system", testMessage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Provider != ProviderGroq {
		t.Fatalf("expected groq, got %s", outcome.Provider)
	}
	if outcome.Text != "Groq fallback response" {
		t.Fatalf("unexpected text: %q", outcome.Text)
	}

	calls := stub.callOrder()
	if len(calls) != 2 || calls[0] != ProviderGemini || calls[1] != ProviderGroq {
		t.Fatalf("expected gemini then groq, got %v", calls)
	}
}

func TestRequestWithFallbackSkipsUnconfigured(t *testing.T) {
	stub := &providerStub{
		claudeStatus: http.StatusOK,
		claudeBody:   `{"content":[{"type":"text","text":"Please seek emergency help immediately."}]}`,
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	// Only the third-priority provider has a credential.
	client := NewClient(stubProviders(server.URL, "", "", "c-key"), server.Client())

	outcome, err := client.RequestWithFallback(context.Background(), "system", testMessage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Provider != ProviderClaude {
		t.Fatalf("expected claude, got %s", outcome.Provider)
	}

	calls := stub.callOrder()
	if len(calls) != 1 || calls[0] != ProviderClaude {
		t.Fatalf("expected a single claude call, got %v", calls)
	}
}

func TestRequestWithFallbackAllFail(t *testing.T) {
	stub := &providerStub{
		geminiStatus: http.StatusInternalServerError,
		geminiBody:   `{"error":{"message":"gemini down"}}`,
		groqStatus:   http.StatusTooManyRequests,
		groqBody:     `{"error":{"message":"rate limited"}}`,
		claudeStatus: http.StatusServiceUnavailable,
		claudeBody:   `{"error":{"message":"overloaded"}}`,
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewClient(stubProviders(server.URL, "g-key", "q-key", "c-key"), server.Client())

	_, err := client.RequestWithFallback(context.Background(), "system", testMessage())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}

	for _, want := range []string{"gemini: ", "gemini down", "groq: ", "rate limited", "claude: ", "overloaded"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("aggregate error missing %q: %v", want, err)
		}
	}

	if calls := stub.callOrder(); len(calls) != 3 {
		t.Fatalf("expected three calls, got %v", calls)
	}
}
