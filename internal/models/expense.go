package models

import (
	"time"
)

// Origin records which channel produced an expense.
type Origin string

const (
	OriginWeb       Origin = "web"
	OriginMessaging Origin = "messaging"
)

func (o Origin) Valid() bool {
	return o == OriginWeb || o == OriginMessaging
}

type Expense struct {
	ExpenseID string    `firestore:"expenseId" json:"expenseId"` // doc ID
	UID       string    `firestore:"uid" json:"uid"`
	Amount    float64   `firestore:"amount" json:"amount"`
	Category  string    `firestore:"category" json:"category"` // lowercase label
	Note      string    `firestore:"note" json:"note,omitempty"`
	Date      time.Time `firestore:"date" json:"date"`
	Origin    Origin    `firestore:"origin" json:"origin"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
