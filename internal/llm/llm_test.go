package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndelorme/conforma/internal/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		wantName string
		wantErr  bool
	}{
		{"openai", "sk-test", "openai", false},
		{"anthropic", "sk-ant-test", "anthropic", false},
		{"claude", "sk-ant-test", "anthropic", false},
		{"Ollama", "", "ollama", false},
		{"anthropic", "", "", true}, // key required
		{"mistral", "", "", true},
	}

	for _, tt := range tests {
		p, err := NewProvider(model.LLMConfig{Provider: tt.provider, APIKey: tt.apiKey})
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewProvider(%q) succeeded, want error", tt.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewProvider(%q) failed: %v", tt.provider, err)
			continue
		}
		if p.Name() != tt.wantName {
			t.Errorf("NewProvider(%q).Name() = %q, want %q", tt.provider, p.Name(), tt.wantName)
		}
	}
}

func TestServiceError_Retryable(t *testing.T) {
	tests := []struct {
		kind FailureKind
		want bool
	}{
		{FailureRateLimited, true},
		{FailureUnavailable, true},
		{FailureTimeout, true},
		{FailureAuthInvalid, false},
	}
	for _, tt := range tests {
		err := &ServiceError{Kind: tt.kind, Provider: "test"}
		if err.Retryable() != tt.want {
			t.Errorf("Retryable(%s) = %t, want %t", tt.kind, err.Retryable(), tt.want)
		}
	}
}

func anthropicOn(t *testing.T, srv *httptest.Server) *AnthropicProvider {
	t.Helper()
	p, err := NewAnthropicProvider(model.LLMConfig{
		Provider: "anthropic",
		APIKey:   "sk-ant-test",
		BaseURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("NewAnthropicProvider failed: %v", err)
	}
	return p
}

func TestAnthropicProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "sk-ant-test" {
			t.Error("api key header missing")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"content": [{"type": "text", "text": "{\"ok\": true}"}],
			"model": "claude-3-5-sonnet-20241022",
			"usage": {"input_tokens": 100, "output_tokens": 20}
		}`))
	}))
	defer srv.Close()

	resp, err := anthropicOn(t, srv).Complete(context.Background(), CompletionRequest{Prompt: "analyze"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != `{"ok": true}` {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.TokensUsed != 120 {
		t.Errorf("tokens = %d, want 120", resp.TokensUsed)
	}
}

func TestAnthropicProvider_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		status int
		want   FailureKind
	}{
		{http.StatusTooManyRequests, FailureRateLimited},
		{http.StatusUnauthorized, FailureAuthInvalid},
		{http.StatusForbidden, FailureAuthInvalid},
		{http.StatusInternalServerError, FailureUnavailable},
		{http.StatusServiceUnavailable, FailureUnavailable},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "x", "message": "nope"}}`))
		}))

		_, err := anthropicOn(t, srv).Complete(context.Background(), CompletionRequest{Prompt: "analyze"})
		srv.Close()

		var svcErr *ServiceError
		if !errors.As(err, &svcErr) {
			t.Fatalf("status %d: got %v, want ServiceError", tt.status, err)
		}
		if svcErr.Kind != tt.want {
			t.Errorf("status %d: kind = %s, want %s", tt.status, svcErr.Kind, tt.want)
		}
	}
}

func TestOllamaProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model": "llama3", "response": "{}", "done": true}`))
	}))
	defer srv.Close()

	p, err := NewOllamaProvider(model.LLMConfig{Provider: "ollama", BaseURL: srv.URL, Model: "llama3"})
	if err != nil {
		t.Fatalf("NewOllamaProvider failed: %v", err)
	}

	resp, err := p.Complete(context.Background(), CompletionRequest{Prompt: "analyze"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != "{}" || resp.Model != "llama3" {
		t.Errorf("response = %+v", resp)
	}
}
