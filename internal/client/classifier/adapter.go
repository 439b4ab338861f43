package classifierclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/budgetbot/backend/internal/dto"
	"github.com/budgetbot/backend/internal/errs"
)

const serviceName = "classifier"

// Adapter calls the local best-effort categorization service. Callers are
// expected to fall back to the uncategorized sentinel on any error from here.
type Adapter struct {
	httpClient *http.Client
	endpoint   string
}

func NewAdapter(endpoint string, timeout time.Duration) *Adapter {
	return &Adapter{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
	}
}

// Predict returns the classifier's category for the original raw message.
func (a *Adapter) Predict(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(dto.ClassifyRequest{Message: message})
	if err != nil {
		return "", errs.NewExternalServiceError(serviceName, "failed to encode classify request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errs.NewExternalServiceError(serviceName, "failed to build classify request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", errs.NewExternalServiceError(serviceName, "classify request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errs.NewExternalServiceError(serviceName,
			fmt.Sprintf("classifier returned status %d", resp.StatusCode), nil)
	}

	var out dto.ClassifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errs.NewExternalServiceError(serviceName, "failed to decode classify response", err)
	}
	if out.Category == "" {
		return "", errs.NewExternalServiceError(serviceName, "classifier returned an empty category", nil)
	}

	return out.Category, nil
}
