package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID          string
	LogLevel           string
	Port               string
	GroqEndpoint       string
	GroqAPIKey         string
	GroqSecretName     string
	GroqModel          string
	GroqTemperature    float32
	OracleTimeout      time.Duration
	ClassifierEndpoint string
}

func New() *Config {
	// Local development reads a .env file; missing files are fine on Cloud Run.
	_ = godotenv.Load()

	return &Config{
		ProjectID:          os.Getenv("PROJECTID"),
		LogLevel:           os.Getenv("LOGLEVEL"),
		Port:               getEnv("PORT", "8080"),
		GroqEndpoint:       getEnv("GROQENDPOINT", "https://api.groq.com/openai/v1/chat/completions"),
		GroqAPIKey:         os.Getenv("GROQAPIKEY"),
		GroqSecretName:     os.Getenv("GROQSECRETNAME"),
		GroqModel:          getEnv("GROQMODEL", "llama3-8b-8192"),
		GroqTemperature:    getTemperature(os.Getenv("GROQTEMPERATURE")),
		OracleTimeout:      getDuration(os.Getenv("ORACLETIMEOUT"), 30*time.Second),
		ClassifierEndpoint: getEnv("CLASSIFIERENDPOINT", "http://localhost:6000/predict"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Low temperature favors deterministic extraction output.
func getTemperature(raw string) float32 {
	if raw == "" {
		return 0.3
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0.3
	}
	return float32(v)
}

func getDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
