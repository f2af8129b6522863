// file: internals/features/finance/ledger/service/expense_recorder.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "bimbelku_backend/internals/features/finance/ledger/model"
)

// RecordExpenseInput is the expense-recording contract.
type RecordExpenseInput struct {
	Category    string
	Description string
	AmountIDR   int64
	ExpenseDate time.Time // zero = today

	RecordedByUserID *uuid.UUID
}

// RecordExpense inserts the Expense row and its "expense" ledger entry
// in one transaction — the same commit-or-nothing discipline as the
// payment recorder.
func RecordExpense(ctx context.Context, db *gorm.DB, centerID uuid.UUID, in RecordExpenseInput) (*model.Expense, error) {
	if in.AmountIDR <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "category required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "description required")
	}

	when := in.ExpenseDate
	if when.IsZero() {
		when = time.Now()
	}

	var expense model.Expense
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expense = model.Expense{
			ExpenseCenterID:         centerID,
			ExpenseCategory:         strings.TrimSpace(in.Category),
			ExpenseDescription:      strings.TrimSpace(in.Description),
			ExpenseAmountIDR:        in.AmountIDR,
			ExpenseDate:             when,
			ExpenseRecordedByUserID: in.RecordedByUserID,
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}

		_, err := AppendEntry(ctx, tx, centerID, AppendInput{
			Type:            model.LedgerEntryTypeExpense,
			DebitIDR:        in.AmountIDR,
			ReferenceType:   model.LedgerRefExpense,
			ReferenceID:     expense.ExpenseID,
			TransactionDate: when,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}
