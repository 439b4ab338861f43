package handlers

import (
	"context"
	"log/slog"
	"time"

	"firebase.google.com/go/v4/auth"

	"github.com/budgetbot/backend/internal/dto"
	"github.com/budgetbot/backend/internal/models"
	"github.com/budgetbot/backend/internal/response"
)

type UserService interface {
	Register(ctx context.Context, uid, email, name, phone string) error
	Get(ctx context.Context, uid string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
}

type ExpenseService interface {
	Create(ctx context.Context, uid string, req dto.CreateExpenseRequest) (*models.Expense, error)
	Record(ctx context.Context, uid string, expense models.Expense) (*models.Expense, error)
	List(ctx context.Context, uid string) ([]models.Expense, error)
	Delete(ctx context.Context, uid, expenseID string) error
	Breakdown(ctx context.Context, uid string, from, to *time.Time) (dto.BreakdownResult, error)
}

type ParserService interface {
	Parse(ctx context.Context, message string) (dto.ParsedCandidate, error)
	Assemble(ctx context.Context, uid string, candidate dto.ParsedCandidate, origin models.Origin) (models.Expense, error)
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	UserSvc         UserService
	ExpenseSvc      ExpenseService
	ParserSvc       ParserService
}
