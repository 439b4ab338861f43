package bootstrap

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"github.com/budgetbot/backend/internal/config"
)

// resolveGroqKey prefers a Secret Manager secret over a raw environment
// value, so deployments never carry the oracle credential in plain env.
func resolveGroqKey(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.GroqSecretName == "" {
		if cfg.GroqAPIKey == "" {
			return "", fmt.Errorf("either GROQSECRETNAME or GROQAPIKEY must be set")
		}
		return cfg.GroqAPIKey, nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: cfg.GroqSecretName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", cfg.GroqSecretName, err)
	}

	return string(resp.Payload.Data), nil
}
