package groqclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/budgetbot/backend/internal/dto"
	"github.com/budgetbot/backend/internal/errs"
	"github.com/budgetbot/backend/pkg/helpers"
)

func TestCompleteSuccess(t *testing.T) {
	var got dto.ChatCompletionRequest
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("request body decode failed: %v", err)
		}
		_ = json.NewEncoder(w).Encode(dto.ChatCompletionResponse{
			Choices: []dto.ChatChoice{
				{Message: dto.ChatMessage{Role: "assistant", Content: `{"amount":200}`}},
			},
		})
	}))
	defer srv.Close()

	adapter := NewAdapter(srv.URL, "test-key", "llama3-8b-8192", 0.3, 5*time.Second)

	text, err := adapter.Complete(helpers.TestCtx(), "extract this")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if text != `{"amount":200}` {
		t.Fatalf("unexpected completion text: %q", text)
	}

	if authHeader != "Bearer test-key" {
		t.Fatalf("missing bearer credential: %q", authHeader)
	}
	if got.Model != "llama3-8b-8192" {
		t.Fatalf("unexpected model: %q", got.Model)
	}
	if got.Temperature != 0.3 {
		t.Fatalf("unexpected temperature: %v", got.Temperature)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "extract this" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
}

func TestCompleteNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	adapter := NewAdapter(srv.URL, "k", "m", 0.3, 5*time.Second)

	_, err := adapter.Complete(helpers.TestCtx(), "x")
	var svcErr *errs.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError, got %T", err)
	}
	if svcErr.Service != "completion" {
		t.Fatalf("unexpected service tag: %q", svcErr.Service)
	}
}

func TestCompleteEmptyEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.ChatCompletionResponse{})
	}))
	defer srv.Close()

	adapter := NewAdapter(srv.URL, "k", "m", 0.3, 5*time.Second)

	_, err := adapter.Complete(helpers.TestCtx(), "x")
	var svcErr *errs.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError for empty envelope, got %T", err)
	}
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	adapter := NewAdapter(srv.URL, "k", "m", 0.3, time.Second)

	_, err := adapter.Complete(helpers.TestCtx(), "x")
	var svcErr *errs.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError for transport failure, got %T", err)
	}
	if svcErr.Cause == nil {
		t.Fatalf("transport failure should carry the underlying cause")
	}
}
