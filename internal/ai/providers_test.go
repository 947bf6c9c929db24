package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newGeminiServer(t *testing.T, status int, body string, captured *string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected gemini path %q", r.URL.Path)
		}
		if captured != nil {
			payload, _ := io.ReadAll(r.Body)
			*captured = string(payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newGeminiClientForTest(t *testing.T, baseURL string) *GeminiClient {
	t.Helper()

	client, err := NewGeminiClient(context.Background(), GeminiConfig{APIKey: "test-key", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewGeminiClient() unexpected error: %v", err)
	}
	return client
}

func TestGeminiClientReturnsCandidateText(t *testing.T) {
	var requestBody string
	reply := `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"recipe\":{}}"}]},"finishReason":"STOP"}]}`
	server := newGeminiServer(t, http.StatusOK, reply, &requestBody)
	client := newGeminiClientForTest(t, server.URL)

	text, err := client.Generate(context.Background(), "make a recipe")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if text != `{"recipe":{}}` {
		t.Fatalf("expected candidate text, got %q", text)
	}
	if !strings.Contains(requestBody, "make a recipe") {
		t.Fatalf("expected prompt in request body, got %s", requestBody)
	}

	var decoded struct {
		GenerationConfig struct {
			Temperature     float64 `json:"temperature"`
			MaxOutputTokens int     `json:"maxOutputTokens"`
		} `json:"generationConfig"`
	}
	if err := json.Unmarshal([]byte(requestBody), &decoded); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if decoded.GenerationConfig.MaxOutputTokens != 2000 {
		t.Fatalf("expected maxOutputTokens=2000, got %d", decoded.GenerationConfig.MaxOutputTokens)
	}
	if decoded.GenerationConfig.Temperature < 0.69 || decoded.GenerationConfig.Temperature > 0.71 {
		t.Fatalf("expected temperature 0.7, got %v", decoded.GenerationConfig.Temperature)
	}
}

func TestGeminiClientWrapsAPIError(t *testing.T) {
	server := newGeminiServer(t, http.StatusForbidden,
		`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`, nil)
	client := newGeminiClientForTest(t, server.URL)

	_, err := client.Generate(context.Background(), "prompt")
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if providerErr.Provider != "gemini" || providerErr.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected provider error: %+v", providerErr)
	}
}

func TestGeminiClientRejectsEmptyCandidates(t *testing.T) {
	server := newGeminiServer(t, http.StatusOK, `{"candidates":[]}`, nil)
	client := newGeminiClientForTest(t, server.URL)

	_, err := client.Generate(context.Background(), "prompt")
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}

func newOpenAIServer(t *testing.T, status int, body string, captured *string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected openai path %q", r.URL.Path)
		}
		if captured != nil {
			payload, _ := io.ReadAll(r.Body)
			*captured = string(payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIClientReturnsFirstChoice(t *testing.T) {
	var requestBody string
	reply := `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo",
		"choices":[{"index":0,"message":{"role":"assistant","content":"Sure! {\"recipe\":{}}"},"finish_reason":"stop"}]}`
	server := newOpenAIServer(t, http.StatusOK, reply, &requestBody)
	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL + "/v1"})

	text, err := client.Generate(context.Background(), "make a recipe")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if text != `Sure! {"recipe":{}}` {
		t.Fatalf("expected first choice content, got %q", text)
	}

	var decoded struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal([]byte(requestBody), &decoded); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if decoded.Model != DefaultOpenAIModel || decoded.MaxTokens != 2000 {
		t.Fatalf("unexpected request: %+v", decoded)
	}
	if len(decoded.Messages) != 1 || decoded.Messages[0].Role != "user" || decoded.Messages[0].Content != "make a recipe" {
		t.Fatalf("expected a single user message, got %+v", decoded.Messages)
	}
}

func TestOpenAIClientWrapsAPIError(t *testing.T) {
	server := newOpenAIServer(t, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`, nil)
	client := NewOpenAIClient(OpenAIConfig{APIKey: "bad", BaseURL: server.URL + "/v1"})

	_, err := client.Generate(context.Background(), "prompt")
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if providerErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", providerErr.StatusCode)
	}
	if providerErr.Message != "Incorrect API key provided" {
		t.Fatalf("expected upstream message, got %q", providerErr.Message)
	}
}

func TestOpenAIClientRejectsEmptyChoices(t *testing.T) {
	server := newOpenAIServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","choices":[]}`, nil)
	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL + "/v1"})

	_, err := client.Generate(context.Background(), "prompt")
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}

func TestOpenAIClientHonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})
	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL + "/v1"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "prompt")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
