package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	classifierclient "github.com/budgetbot/backend/internal/client/classifier"
	groqclient "github.com/budgetbot/backend/internal/client/groq"
	"github.com/budgetbot/backend/internal/config"
	"github.com/budgetbot/backend/pkg/logger"
)

type Bootstrap struct {
	Log        *slog.Logger
	Firestore  *firestore.Client
	Firebase   *auth.Client
	Groq       *groqclient.Adapter
	Classifier *classifierclient.Adapter
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(applicationCtx)
	if err != nil {
		return bs, err
	}

	apiKey, err := resolveGroqKey(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}
	bs.Groq = groqclient.NewAdapter(cfg.GroqEndpoint, apiKey, cfg.GroqModel, cfg.GroqTemperature, cfg.OracleTimeout)
	bs.Classifier = classifierclient.NewAdapter(cfg.ClassifierEndpoint, cfg.OracleTimeout)

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		if err := bs.Firestore.Close(); err != nil && bs.Log != nil {
			bs.Log.Error("firestore close failed", "error", err)
		}
	}
}
