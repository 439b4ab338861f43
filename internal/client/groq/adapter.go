package groqclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/budgetbot/backend/internal/dto"
	"github.com/budgetbot/backend/internal/errs"
)

const serviceName = "completion"

// Adapter speaks the OpenAI-compatible chat completions API hosted by Groq.
// One request per call, no retry; the client timeout is the only bound.
type Adapter struct {
	httpClient  *http.Client
	endpoint    string
	apiKey      string
	model       string
	temperature float32
}

func NewAdapter(endpoint, apiKey, model string, temperature float32, timeout time.Duration) *Adapter {
	return &Adapter{
		httpClient:  &http.Client{Timeout: timeout},
		endpoint:    endpoint,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
	}
}

// Complete sends the prompt as a single user message and returns the first
// choice's text. Transport errors, non-2xx statuses, and envelopes missing
// the text all collapse to one ExternalServiceError kind.
func (a *Adapter) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(dto.ChatCompletionRequest{
		Model: a.model,
		Messages: []dto.ChatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: a.temperature,
	})
	if err != nil {
		return "", errs.NewExternalServiceError(serviceName, "failed to encode completion request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errs.NewExternalServiceError(serviceName, "failed to build completion request", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", errs.NewExternalServiceError(serviceName, "completion request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errs.NewExternalServiceError(serviceName,
			fmt.Sprintf("completion returned status %d: %s", resp.StatusCode, snippet), nil)
	}

	var envelope dto.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", errs.NewExternalServiceError(serviceName, "failed to decode completion envelope", err)
	}
	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		return "", errs.NewExternalServiceError(serviceName, "completion envelope has no message content", nil)
	}

	return envelope.Choices[0].Message.Content, nil
}
