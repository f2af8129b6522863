// file: internals/features/finance/ledger/service/ledger_service_test.go
package service

import (
	"context"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "bimbelku_backend/internals/databases"
	model "bimbelku_backend/internals/features/finance/ledger/model"
	centerModel "bimbelku_backend/internals/features/school/centers/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping DB test in short mode")
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&centerModel.Center{},
		&model.Expense{},
		&model.LedgerEntry{},
	))
	require.NoError(t, database.ApplySchemaConstraints(db))
	return db
}

func seedCenter(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	center := centerModel.Center{
		CenterName: "Ledger Center",
		CenterSlug: "ledger-" + uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(&center).Error)
	t.Cleanup(func() {
		db.Exec("DELETE FROM ledger_entries WHERE ledger_entry_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM expenses WHERE expense_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM centers WHERE center_id = ?", center.CenterID)
	})
	return center.CenterID
}

// The debit/credit XOR check runs before any SQL, so a nil tx is safe
// for the rejection paths.
func TestAppendEntry_RejectsBadAmounts(t *testing.T) {
	cases := []struct {
		name string
		in   AppendInput
	}{
		{"both zero", AppendInput{}},
		{"both set", AppendInput{DebitIDR: 10, CreditIDR: 10}},
		{"negative debit", AppendInput{DebitIDR: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AppendEntry(context.Background(), nil, uuid.New(), tc.in)
			require.Error(t, err)
			fe, ok := err.(*fiber.Error)
			require.True(t, ok)
			assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
		})
	}
}

func TestAppendEntry_RunningBalance(t *testing.T) {
	db := openTestDB(t)
	centerID := seedCenter(t, db)

	var balances []int64
	err := db.Transaction(func(tx *gorm.DB) error {
		steps := []AppendInput{
			{Type: model.LedgerEntryTypePayment, CreditIDR: 1000, ReferenceType: model.LedgerRefPayment, ReferenceID: uuid.New()},
			{Type: model.LedgerEntryTypeExpense, DebitIDR: 300, ReferenceType: model.LedgerRefExpense, ReferenceID: uuid.New()},
			{Type: model.LedgerEntryTypePayment, CreditIDR: 500, ReferenceType: model.LedgerRefPayment, ReferenceID: uuid.New()},
		}
		for _, in := range steps {
			entry, err := AppendEntry(context.Background(), tx, centerID, in)
			if err != nil {
				return err
			}
			balances = append(balances, entry.LedgerEntryRunningBalanceIDR)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1000, 700, 1200}, balances)
}

func TestAppendEntry_UnknownCenter(t *testing.T) {
	db := openTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := AppendEntry(context.Background(), tx, uuid.New(), AppendInput{
			Type:          model.LedgerEntryTypePayment,
			CreditIDR:     100,
			ReferenceType: model.LedgerRefPayment,
			ReferenceID:   uuid.New(),
		})
		return err
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestRecordExpense_WritesExpenseAndEntry(t *testing.T) {
	db := openTestDB(t)
	centerID := seedCenter(t, db)

	expense, err := RecordExpense(context.Background(), db, centerID, RecordExpenseInput{
		Category:    "utilities",
		Description: "electricity bill March",
		AmountIDR:   750_000,
	})
	require.NoError(t, err)

	var entry model.LedgerEntry
	require.NoError(t, db.
		Where("ledger_entry_reference_type = ? AND ledger_entry_reference_id = ?",
			model.LedgerRefExpense, expense.ExpenseID).
		First(&entry).Error)
	assert.EqualValues(t, 750_000, entry.LedgerEntryDebitIDR)
	assert.EqualValues(t, 0, entry.LedgerEntryCreditIDR)
	assert.Equal(t, model.LedgerEntryTypeExpense, entry.LedgerEntryType)
	assert.Equal(t, AccountCodeCash, entry.LedgerEntryAccountCode)
}

// The XOR rule must also hold against writes that bypass AppendEntry.
func TestLedgerXorEnforcedByDatabase(t *testing.T) {
	db := openTestDB(t)
	centerID := seedCenter(t, db)

	err := db.Exec(`
		INSERT INTO ledger_entries (
			ledger_entry_center_id, ledger_entry_account_code, ledger_entry_account_name,
			ledger_entry_type, ledger_entry_debit_idr, ledger_entry_credit_idr,
			ledger_entry_reference_type, ledger_entry_reference_id,
			ledger_entry_running_balance_idr, ledger_entry_transaction_date
		) VALUES (?, '1000', 'Cash', 'payment', 0, 0, 'payment', ?, 0, NOW())`,
		centerID, uuid.New()).Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chk_ledger_debit_xor_credit")
}

func TestRecordExpense_Validation(t *testing.T) {
	db := openTestDB(t)
	centerID := seedCenter(t, db)

	_, err := RecordExpense(context.Background(), db, centerID, RecordExpenseInput{
		Category: "utilities", Description: "x", AmountIDR: 0,
	})
	require.Error(t, err)

	_, err = RecordExpense(context.Background(), db, centerID, RecordExpenseInput{
		Category: "  ", Description: "x", AmountIDR: 100,
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Expense{}).
		Where("expense_center_id = ?", centerID).Count(&count).Error)
	assert.EqualValues(t, 0, count, "rejected expenses must not be stored")
}
