package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/budgetbot/backend/internal/errs"
	"github.com/budgetbot/backend/internal/models"
)

type expenseStore struct {
	client *firestore.Client
}

func NewExpenseStore(client *firestore.Client) *expenseStore {
	return &expenseStore{client: client}
}

func (s *expenseStore) expensesCollection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("expenses")
}

// Create assigns the generated identifier and creation timestamps, then
// writes the record. Records are immutable once written except by Delete.
func (s *expenseStore) Create(ctx context.Context, uid string, expense *models.Expense) error {
	if expense.ExpenseID == "" {
		expense.ExpenseID = uuid.NewString()
	}

	now := time.Now()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	if _, err := s.expensesCollection(uid).Doc(expense.ExpenseID).Create(ctx, expense); err != nil {
		return errs.NewDatabaseError("create", "failed to save expense", err)
	}
	return nil
}

// List returns all of the owner's expenses ordered by date descending.
func (s *expenseStore) List(ctx context.Context, uid string) ([]models.Expense, error) {
	iter := s.expensesCollection(uid).OrderBy("date", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var expenses []models.Expense
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("list", "failed to list expenses", err)
		}

		var expense models.Expense
		if err := doc.DataTo(&expense); err != nil {
			return nil, errs.NewDatabaseError("list", "failed to decode expense", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

func (s *expenseStore) Delete(ctx context.Context, uid, expenseID string) error {
	if _, err := s.expensesCollection(uid).Doc(expenseID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete expense", err)
	}
	return nil
}
