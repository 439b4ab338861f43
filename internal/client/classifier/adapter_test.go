package classifierclient

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

func TestPredictSuccess(t *testing.T) {
	var got dto.ClassifyRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("request body decode failed: %v", err)
		}
		_ = json.NewEncoder(w).Encode(dto.ClassifyResponse{Category: "food"})
	}))
	defer srv.Close()

	adapter := NewAdapter(srv.URL, 5*time.Second)

	category, err := adapter.Predict(helpers.TestCtx(), "Spent 200 on groceries")
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if category != "food" {
		t.Fatalf("unexpected category: %q", category)
	}
	if got.Message != "Spent 200 on groceries" {
		t.Fatalf("classifier must receive the original message, got %q", got.Message)
	}
}

func TestPredictNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	adapter := NewAdapter(srv.URL, 5*time.Second)

	_, err := adapter.Predict(helpers.TestCtx(), "x")
	var svcErr *errs.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError, got %T", err)
	}
	if svcErr.Service != "classifier" {
		t.Fatalf("unexpected service tag: %q", svcErr.Service)
	}
}

func TestPredictEmptyCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.ClassifyResponse{})
	}))
	defer srv.Close()

	adapter := NewAdapter(srv.URL, 5*time.Second)

	if _, err := adapter.Predict(helpers.TestCtx(), "x"); err == nil {
		t.Fatalf("expected error for empty category")
	}
}

func TestPredictTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	adapter := NewAdapter(srv.URL, time.Second)

	_, err := adapter.Predict(helpers.TestCtx(), "x")
	var svcErr *errs.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError, got %T", err)
	}
}
