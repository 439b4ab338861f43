package services

import (
	"context"
	"strings"
	"time"

	"github.com/budgetbot/backend/internal/dto"
	"github.com/budgetbot/backend/internal/errs"
	"github.com/budgetbot/backend/internal/models"
	"github.com/budgetbot/backend/internal/taxonomy"
	"github.com/budgetbot/backend/pkg/logger"
)

type expenseESStore interface {
	Create(ctx context.Context, uid string, expense *models.Expense) error
	List(ctx context.Context, uid string) ([]models.Expense, error)
	Delete(ctx context.Context, uid, expenseID string) error
}

type expenseService struct {
	store expenseESStore
}

func NewExpenseService(store expenseESStore) *expenseService {
	return &expenseService{store: store}
}

// Create validates a web-form expense and persists it. The same record rules
// apply as for parsed messages; origin defaults to web here since the form is
// the caller.
func (s *expenseService) Create(ctx context.Context, uid string, req dto.CreateExpenseRequest) (*models.Expense, error) {
	log := logger.FromContext(ctx)

	if req.Amount == nil {
		return nil, errs.NewValidationError("amount is required")
	}
	if *req.Amount < 0 {
		return nil, errs.NewValidationError("amount cannot be negative")
	}

	category := taxonomy.Normalize(req.Category)
	if category == "" {
		return nil, errs.NewValidationError("category is required")
	}

	note := strings.TrimSpace(req.Note)
	if runes := []rune(note); len(runes) > maxNoteLength {
		return nil, errs.NewValidationError("note must be 100 characters or fewer")
	}

	date, err := parseExpenseDate(req.Date)
	if err != nil {
		return nil, err
	}

	origin := models.Origin(req.Origin)
	if req.Origin == "" {
		origin = models.OriginWeb
	}
	if !origin.Valid() {
		return nil, errs.NewValidationError("origin must be web or messaging")
	}

	expense := &models.Expense{
		UID:      uid,
		Amount:   *req.Amount,
		Category: category,
		Note:     note,
		Date:     date,
		Origin:   origin,
	}

	if err := s.store.Create(ctx, uid, expense); err != nil {
		log.Error("failed to create expense in store", "error", err)
		return nil, err
	}

	log.Info("expense created", "expense_id", expense.ExpenseID, "category", expense.Category)
	return expense, nil
}

// Record persists an already-assembled record from the parsing pipeline.
func (s *expenseService) Record(ctx context.Context, uid string, expense models.Expense) (*models.Expense, error) {
	log := logger.FromContext(ctx)

	if err := s.store.Create(ctx, uid, &expense); err != nil {
		log.Error("failed to record parsed expense", "error", err)
		return nil, err
	}

	log.Info("parsed expense recorded",
		"expense_id", expense.ExpenseID,
		"category", expense.Category,
		"origin", expense.Origin)
	return &expense, nil
}

// List returns the owner's expenses ordered by date descending (store order).
func (s *expenseService) List(ctx context.Context, uid string) ([]models.Expense, error) {
	return s.store.List(ctx, uid)
}

func (s *expenseService) Delete(ctx context.Context, uid, expenseID string) error {
	if expenseID == "" {
		return errs.NewValidationError("expenseID is required")
	}
	return s.store.Delete(ctx, uid, expenseID)
}

// Breakdown aggregates per-category totals for the chart view, optionally
// bounded to [from, to].
func (s *expenseService) Breakdown(ctx context.Context, uid string, from, to *time.Time) (dto.BreakdownResult, error) {
	result := dto.BreakdownResult{}
	if from != nil {
		result.From = from.Format("2006-01-02")
	}
	if to != nil {
		result.To = to.Format("2006-01-02")
	}

	expenses, err := s.store.List(ctx, uid)
	if err != nil {
		return result, err
	}

	items := map[string]*dto.BreakdownItem{}
	for _, e := range expenses {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		item, ok := items[e.Category]
		if !ok {
			item = &dto.BreakdownItem{Category: e.Category}
			items[e.Category] = item
		}
		item.Total += e.Amount
		item.Count++
	}

	result.Items = make([]dto.BreakdownItem, 0, len(items))
	for _, item := range items {
		result.Items = append(result.Items, *item)
	}
	return result, nil
}

func parseExpenseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errs.NewValidationError("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.NewValidationError("date must be ISO 8601")
}
