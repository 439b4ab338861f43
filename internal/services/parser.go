package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/budgetbot/backend/internal/dto"
	"github.com/budgetbot/backend/internal/errs"
	"github.com/budgetbot/backend/internal/models"
	"github.com/budgetbot/backend/internal/taxonomy"
	"github.com/budgetbot/backend/pkg/logger"
)

// dateUnknown is the sentinel the prompt instructs the model to emit when the
// message carries no discernible date. Case-sensitive.
const dateUnknown = "unknown"

const maxNoteLength = 100

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type completionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type categoryClassifier interface {
	Predict(ctx context.Context, message string) (string, error)
}

type parserService struct {
	completion completionClient
	classifier categoryClassifier
	clockNow   func() time.Time
}

func NewParserService(completion completionClient, classifier categoryClassifier) *parserService {
	return &parserService{
		completion: completion,
		classifier: classifier,
		clockNow:   time.Now,
	}
}

// Parse turns a free-text expense message into a candidate record: prompt,
// single completion call, strict decode, then category fallback when the
// model left the category blank. No stage retries a prior stage.
func (s *parserService) Parse(ctx context.Context, message string) (dto.ParsedCandidate, error) {
	log := logger.FromContext(ctx)

	raw, err := s.completion.Complete(ctx, extractionPrompt(message))
	if err != nil {
		log.Error("completion call failed", "error", err)
		return dto.ParsedCandidate{}, err
	}

	candidate, err := decodeCandidate(raw)
	if err != nil {
		log.Error("completion text did not decode as an expense object", "raw", raw)
		return dto.ParsedCandidate{}, err
	}

	if strings.TrimSpace(candidate.Category) == "" {
		candidate.Category = s.fallbackCategory(ctx, message)
	}

	return candidate, nil
}

// Assemble validates a candidate and produces a record ready for the store.
// Amount presence is checked first: a message without an extractable amount
// is a rejection, never a fabricated record. Date and category are the only
// fields the pipeline may substitute.
func (s *parserService) Assemble(ctx context.Context, uid string, candidate dto.ParsedCandidate, origin models.Origin) (models.Expense, error) {
	if candidate.Amount == nil {
		return models.Expense{}, errs.NewValidationError("could not understand the message: no amount found")
	}
	if *candidate.Amount < 0 {
		return models.Expense{}, errs.NewValidationError("amount cannot be negative")
	}

	category := taxonomy.Normalize(candidate.Category)
	if category == "" {
		category = taxonomy.Uncategorized
	}

	note := strings.TrimSpace(candidate.Note)
	if runes := []rune(note); len(runes) > maxNoteLength {
		note = string(runes[:maxNoteLength])
	}

	if origin != models.OriginWeb {
		origin = models.OriginMessaging
	}

	return models.Expense{
		UID:      uid,
		Amount:   *candidate.Amount,
		Category: category,
		Note:     note,
		Date:     s.normalizeDate(ctx, candidate.Date),
		Origin:   origin,
	}, nil
}

// fallbackCategory never fails the parse: any classifier error resolves to
// the uncategorized sentinel.
func (s *parserService) fallbackCategory(ctx context.Context, message string) string {
	log := logger.FromContext(ctx)

	category, err := s.classifier.Predict(ctx, message)
	if err != nil {
		log.Warn("fallback classifier failed, using sentinel", "error", err)
		return taxonomy.Uncategorized
	}
	if strings.TrimSpace(category) == "" {
		return taxonomy.Uncategorized
	}

	log.Info("category resolved by fallback classifier", "category", category)
	return category
}

// normalizeDate substitutes the current time for a missing, sentinel, or
// unparsable date. Parsed timestamps are used as-is; no timezone correction
// is applied beyond what the layout carries.
func (s *parserService) normalizeDate(ctx context.Context, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == dateUnknown {
		return s.clockNow()
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	logger.FromContext(ctx).Warn("unparsable expense date, using current time", "date", raw)
	return s.clockNow()
}

// decodeCandidate is a pure function of the oracle text: trim, then decode
// the whole text as one JSON object. Wrong-typed fields (a string where a
// number belongs) fail here rather than being coerced.
func decodeCandidate(raw string) (dto.ParsedCandidate, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return dto.ParsedCandidate{}, errs.NewDecodeError(trimmed)
	}

	var candidate dto.ParsedCandidate
	if err := json.Unmarshal([]byte(trimmed), &candidate); err != nil {
		return dto.ParsedCandidate{}, errs.NewDecodeError(trimmed)
	}

	return candidate, nil
}

func extractionPrompt(message string) string {
	return "You are an intelligent financial assistant. Your task is to extract structured expense information " +
		"from a user's natural language message.\n\n" +
		"Rules:\n" +
		"- \"category\" must be a general category such as: \"" + strings.Join(taxonomy.CategoryList, "\", \"") + "\". " +
		"Do not use brand or vendor names like \"Uber\", \"Zomato\", or \"Amazon\" as categories.\n" +
		"- If a date is not mentioned, set it to \"" + dateUnknown + "\".\n" +
		"- Keep the \"note\" short and meaningful. Do not repeat the category or amount in it.\n\n" +
		"Output must be in this strict JSON format:\n" +
		"{\n" +
		"  \"amount\": number,\n" +
		"  \"category\": \"string\",\n" +
		"  \"date\": \"ISO 8601 format or '" + dateUnknown + "'\",\n" +
		"  \"note\": \"string\"\n" +
		"}\n\n" +
		"Message:\n" +
		"\"" + message + "\"\n\n" +
		"Respond only with the JSON. Do not include any explanation or extra text."
}
