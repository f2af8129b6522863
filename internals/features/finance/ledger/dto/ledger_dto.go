// file: internals/features/finance/ledger/dto/ledger_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/finance/ledger/model"
)

////////////////////////////////////////////////////////////////////////////////
// EXPENSES — DTO
////////////////////////////////////////////////////////////////////////////////

type ExpenseCreateDTO struct {
	ExpenseCategory    string     `json:"expense_category" validate:"required,max=40"`
	ExpenseDescription string     `json:"expense_description" validate:"required"`
	ExpenseAmountIDR   int64      `json:"expense_amount_idr" validate:"required,gt=0"`
	ExpenseDate        *time.Time `json:"expense_date,omitempty"`
}

type ExpenseResponse struct {
	ExpenseID          uuid.UUID `json:"expense_id"`
	ExpenseCenterID    uuid.UUID `json:"expense_center_id"`
	ExpenseCategory    string    `json:"expense_category"`
	ExpenseDescription string    `json:"expense_description"`
	ExpenseAmountIDR   int64     `json:"expense_amount_idr"`
	ExpenseDate        time.Time `json:"expense_date"`
	ExpenseCreatedAt   time.Time `json:"expense_created_at"`
}

func ToExpenseResponse(m model.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:          m.ExpenseID,
		ExpenseCenterID:    m.ExpenseCenterID,
		ExpenseCategory:    m.ExpenseCategory,
		ExpenseDescription: m.ExpenseDescription,
		ExpenseAmountIDR:   m.ExpenseAmountIDR,
		ExpenseDate:        m.ExpenseDate,
		ExpenseCreatedAt:   m.ExpenseCreatedAt,
	}
}

////////////////////////////////////////////////////////////////////////////////
// LEDGER — DTO
////////////////////////////////////////////////////////////////////////////////

type LedgerEntryResponse struct {
	LedgerEntryID          uuid.UUID `json:"ledger_entry_id"`
	LedgerEntryCenterID    uuid.UUID `json:"ledger_entry_center_id"`
	LedgerEntryAccountCode string    `json:"ledger_entry_account_code"`
	LedgerEntryAccountName string    `json:"ledger_entry_account_name"`
	LedgerEntryType        string    `json:"ledger_entry_type"`

	LedgerEntryDebitIDR  int64 `json:"ledger_entry_debit_idr"`
	LedgerEntryCreditIDR int64 `json:"ledger_entry_credit_idr"`

	LedgerEntryReferenceType string    `json:"ledger_entry_reference_type"`
	LedgerEntryReferenceID   uuid.UUID `json:"ledger_entry_reference_id"`

	LedgerEntryRunningBalanceIDR int64     `json:"ledger_entry_running_balance_idr"`
	LedgerEntryTransactionDate   time.Time `json:"ledger_entry_transaction_date"`
	LedgerEntryCreatedAt         time.Time `json:"ledger_entry_created_at"`
}

func ToLedgerEntryResponse(m model.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerEntryID:                m.LedgerEntryID,
		LedgerEntryCenterID:          m.LedgerEntryCenterID,
		LedgerEntryAccountCode:       m.LedgerEntryAccountCode,
		LedgerEntryAccountName:       m.LedgerEntryAccountName,
		LedgerEntryType:              string(m.LedgerEntryType),
		LedgerEntryDebitIDR:          m.LedgerEntryDebitIDR,
		LedgerEntryCreditIDR:         m.LedgerEntryCreditIDR,
		LedgerEntryReferenceType:     m.LedgerEntryReferenceType,
		LedgerEntryReferenceID:       m.LedgerEntryReferenceID,
		LedgerEntryRunningBalanceIDR: m.LedgerEntryRunningBalanceIDR,
		LedgerEntryTransactionDate:   m.LedgerEntryTransactionDate,
		LedgerEntryCreatedAt:         m.LedgerEntryCreatedAt,
	}
}
