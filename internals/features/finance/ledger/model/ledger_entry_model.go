// file: internals/features/finance/ledger/model/ledger_entry_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// =========================================================
// ENUM — ledger entry / reference types
// =========================================================

type LedgerEntryType string

const (
	LedgerEntryTypePayment    LedgerEntryType = "payment"    // credit: money in
	LedgerEntryTypeExpense    LedgerEntryType = "expense"    // debit: money out
	LedgerEntryTypeAdjustment LedgerEntryType = "adjustment" // reversing correction
)

const (
	LedgerRefPayment = "payment"
	LedgerRefExpense = "expense"
)

// =========================================================
// MODEL — ledger_entries
//
// Append-only journal per center. One entry per Payment and per
// Expense, debit XOR credit, with the running balance captured
// at write time (computed inside the writer's transaction).
// No UpdatedAt / DeletedAt: rows are never touched again.
// =========================================================

type LedgerEntry struct {
	// PK
	LedgerEntryID uuid.UUID `gorm:"column:ledger_entry_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"ledger_entry_id"`

	// Tenant
	LedgerEntryCenterID uuid.UUID `gorm:"column:ledger_entry_center_id;type:uuid;not null;index:idx_ledger_center" json:"ledger_entry_center_id"`

	LedgerEntryAccountCode string          `gorm:"column:ledger_entry_account_code;type:varchar(20);not null" json:"ledger_entry_account_code"`
	LedgerEntryAccountName string          `gorm:"column:ledger_entry_account_name;type:varchar(60);not null" json:"ledger_entry_account_name"`
	LedgerEntryType        LedgerEntryType `gorm:"column:ledger_entry_type;type:varchar(15);not null;index" json:"ledger_entry_type"`

	// Debit XOR credit; chk_ledger_debit_xor_credit, installed by
	// database.ApplySchemaConstraints, enforces (debit = 0) <> (credit = 0).
	LedgerEntryDebitIDR  int64 `gorm:"column:ledger_entry_debit_idr;type:bigint;not null;default:0;check:ledger_entry_debit_idr>=0" json:"ledger_entry_debit_idr"`
	LedgerEntryCreditIDR int64 `gorm:"column:ledger_entry_credit_idr;type:bigint;not null;default:0;check:ledger_entry_credit_idr>=0" json:"ledger_entry_credit_idr"`

	// Source record: exactly one ledger entry per payment/expense.
	LedgerEntryReferenceType string    `gorm:"column:ledger_entry_reference_type;type:varchar(15);not null;uniqueIndex:uniq_ledger_reference,priority:1" json:"ledger_entry_reference_type"`
	LedgerEntryReferenceID   uuid.UUID `gorm:"column:ledger_entry_reference_id;type:uuid;not null;uniqueIndex:uniq_ledger_reference,priority:2" json:"ledger_entry_reference_id"`

	LedgerEntryRunningBalanceIDR int64     `gorm:"column:ledger_entry_running_balance_idr;type:bigint;not null" json:"ledger_entry_running_balance_idr"`
	LedgerEntryTransactionDate   time.Time `gorm:"column:ledger_entry_transaction_date;not null;index" json:"ledger_entry_transaction_date"`

	LedgerEntryCreatedAt time.Time `gorm:"column:ledger_entry_created_at;not null;autoCreateTime" json:"ledger_entry_created_at"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }
