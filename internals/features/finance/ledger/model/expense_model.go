// file: internals/features/finance/ledger/model/expense_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is an outgoing cost recorded by center staff. Each row gets
// exactly one "expense" ledger entry in the same transaction.
type Expense struct {
	// PK
	ExpenseID uuid.UUID `gorm:"column:expense_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"expense_id"`

	// Tenant
	ExpenseCenterID uuid.UUID `gorm:"column:expense_center_id;type:uuid;not null;index:idx_expenses_center" json:"expense_center_id"`

	ExpenseCategory    string    `gorm:"column:expense_category;type:varchar(40);not null;index" json:"expense_category"`
	ExpenseDescription string    `gorm:"column:expense_description;type:text;not null" json:"expense_description"`
	ExpenseAmountIDR   int64     `gorm:"column:expense_amount_idr;type:bigint;not null;check:expense_amount_idr>0" json:"expense_amount_idr"`
	ExpenseDate        time.Time `gorm:"column:expense_date;type:date;not null;index" json:"expense_date"`

	ExpenseRecordedByUserID *uuid.UUID `gorm:"column:expense_recorded_by_user_id;type:uuid" json:"expense_recorded_by_user_id,omitempty"`

	ExpenseCreatedAt time.Time      `gorm:"column:expense_created_at;not null;autoCreateTime" json:"expense_created_at"`
	ExpenseUpdatedAt time.Time      `gorm:"column:expense_updated_at;not null;autoUpdateTime" json:"expense_updated_at"`
	ExpenseDeletedAt gorm.DeletedAt `gorm:"column:expense_deleted_at;index" json:"-"`
}

func (Expense) TableName() string { return "expenses" }
