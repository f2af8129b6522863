// file: internals/features/finance/payments/service/payment_recorder_test.go
package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "bimbelku_backend/internals/databases"
	invoiceModel "bimbelku_backend/internals/features/finance/invoices/model"
	ledgerModel "bimbelku_backend/internals/features/finance/ledger/model"
	model "bimbelku_backend/internals/features/finance/payments/model"
	centerModel "bimbelku_backend/internals/features/school/centers/model"
	studentModel "bimbelku_backend/internals/features/school/students/model"
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
		&studentModel.Student{},
		&invoiceModel.Invoice{},
		&invoiceModel.InvoiceItem{},
		&model.Payment{},
		&model.PaymentAllocation{},
		&ledgerModel.LedgerEntry{},
	))
	require.NoError(t, database.ApplySchemaConstraints(db))
	return db
}

// seedInvoice creates a center, a student and one pending invoice with
// the given total, and cleans all of it up after the test.
func seedInvoice(t *testing.T, db *gorm.DB, totalIDR int64) (uuid.UUID, invoiceModel.Invoice) {
	t.Helper()

	center := centerModel.Center{
		CenterName: "Test Center " + uuid.NewString()[:8],
		CenterSlug: "test-" + uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(&center).Error)

	student := studentModel.Student{
		StudentCenterID:      center.CenterID,
		StudentName:          "Budi",
		StudentGrade:         "10",
		StudentContactNumber: "08" + uuid.NewString()[:10],
	}
	require.NoError(t, db.Create(&student).Error)

	inv := invoiceModel.Invoice{
		InvoiceCenterID:       center.CenterID,
		InvoiceStudentID:      student.StudentID,
		InvoiceNumber:         "INV-TEST-" + uuid.NewString()[:8],
		InvoiceMonth:          1,
		InvoiceYear:           2026,
		InvoiceAcademicYear:   "2025/2026",
		InvoiceDueDate:        time.Now().AddDate(0, 0, 7),
		InvoiceTotalAmountIDR: totalIDR,
		InvoiceStatus:         invoiceModel.InvoiceStatusPending,
	}
	require.NoError(t, db.Create(&inv).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM ledger_entries WHERE ledger_entry_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM payment_allocations WHERE payment_allocation_invoice_id IN (SELECT invoice_id FROM invoices WHERE invoice_center_id = ?)", center.CenterID)
		db.Exec("DELETE FROM payments WHERE payment_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM invoice_items WHERE invoice_item_invoice_id IN (SELECT invoice_id FROM invoices WHERE invoice_center_id = ?)", center.CenterID)
		db.Exec("DELETE FROM invoices WHERE invoice_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM students WHERE student_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM centers WHERE center_id = ?", center.CenterID)
	})
	return center.CenterID, inv
}

func TestRecordPayment_FullSettlement(t *testing.T) {
	db := openTestDB(t)
	centerID, inv := seedInvoice(t, db, 1000)

	res, err := RecordPayment(context.Background(), db, centerID, RecordPaymentInput{
		InvoiceID: &inv.InvoiceID,
		AmountIDR: 1000,
		Method:    model.PaymentMethodCash,
	})
	require.NoError(t, err)

	require.Len(t, res.Invoices, 1)
	got := res.Invoices[0]
	assert.EqualValues(t, 1000, got.InvoicePaidAmountIDR)
	assert.EqualValues(t, 0, got.InvoiceRemainingAmountIDR)
	assert.Equal(t, invoiceModel.InvoiceStatusPaid, got.InvoiceStatus)

	// exactly one ledger entry, credited with the payment amount
	var entries []ledgerModel.LedgerEntry
	require.NoError(t, db.
		Where("ledger_entry_reference_type = ? AND ledger_entry_reference_id = ?",
			ledgerModel.LedgerRefPayment, res.Payment.PaymentID).
		Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.EqualValues(t, 1000, entries[0].LedgerEntryCreditIDR)
	assert.EqualValues(t, 0, entries[0].LedgerEntryDebitIDR)
}

func TestRecordPayment_PartialThenSettle(t *testing.T) {
	db := openTestDB(t)
	centerID, inv := seedInvoice(t, db, 1000)

	res, err := RecordPayment(context.Background(), db, centerID, RecordPaymentInput{
		InvoiceID: &inv.InvoiceID,
		AmountIDR: 400,
		Method:    model.PaymentMethodTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, invoiceModel.InvoiceStatusPartial, res.Invoices[0].InvoiceStatus)
	assert.EqualValues(t, 600, res.Invoices[0].InvoiceRemainingAmountIDR)

	res, err = RecordPayment(context.Background(), db, centerID, RecordPaymentInput{
		InvoiceID: &inv.InvoiceID,
		AmountIDR: 600,
		Method:    model.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, invoiceModel.InvoiceStatusPaid, res.Invoices[0].InvoiceStatus)
	assert.EqualValues(t, 0, res.Invoices[0].InvoiceRemainingAmountIDR)

	// payment numbers are sequential per center
	var numbers []int64
	require.NoError(t, db.Model(&model.Payment{}).
		Where("payment_center_id = ?", centerID).
		Order("payment_number").
		Pluck("payment_number", &numbers).Error)
	assert.Equal(t, []int64{1, 2}, numbers)
}

func TestRecordPayment_OverpaymentRejected(t *testing.T) {
	db := openTestDB(t)
	centerID, inv := seedInvoice(t, db, 1000)

	// knock it down to 600 remaining first
	_, err := RecordPayment(context.Background(), db, centerID, RecordPaymentInput{
		InvoiceID: &inv.InvoiceID,
		AmountIDR: 400,
		Method:    model.PaymentMethodCash,
	})
	require.NoError(t, err)

	_, err = RecordPayment(context.Background(), db, centerID, RecordPaymentInput{
		InvoiceID: &inv.InvoiceID,
		AmountIDR: 700,
		Method:    model.PaymentMethodCash,
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)

	// the rejected attempt must leave no trace
	var reloaded invoiceModel.Invoice
	require.NoError(t, db.First(&reloaded, "invoice_id = ?", inv.InvoiceID).Error)
	assert.EqualValues(t, 600, reloaded.InvoiceRemainingAmountIDR)

	var payments int64
	require.NoError(t, db.Model(&model.Payment{}).
		Where("payment_center_id = ?", centerID).Count(&payments).Error)
	assert.EqualValues(t, 1, payments)

	var entries int64
	require.NoError(t, db.Model(&ledgerModel.LedgerEntry{}).
		Where("ledger_entry_center_id = ?", centerID).Count(&entries).Error)
	assert.EqualValues(t, 1, entries)
}

func TestRecordPayment_WrongCenterIsNotFound(t *testing.T) {
	db := openTestDB(t)
	_, inv := seedInvoice(t, db, 1000)
	otherCenterID, _ := seedInvoice(t, db, 500)

	_, err := RecordPayment(context.Background(), db, otherCenterID, RecordPaymentInput{
		InvoiceID: &inv.InvoiceID,
		AmountIDR: 100,
		Method:    model.PaymentMethodCash,
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

// Two concurrent payments whose sum exceeds the remaining balance:
// exactly one commits, and the balance never goes negative.
func TestRecordPayment_ConcurrentOverIsSerialized(t *testing.T) {
	db := openTestDB(t)
	centerID, inv := seedInvoice(t, db, 1000)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, amount := range []int64{700, 700} {
		wg.Add(1)
		go func(slot int, amt int64) {
			defer wg.Done()
			_, errs[slot] = RecordPayment(context.Background(), db, centerID, RecordPaymentInput{
				InvoiceID: &inv.InvoiceID,
				AmountIDR: amt,
				Method:    model.PaymentMethodCash,
			})
		}(i, amount)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
			fe, ok := err.(*fiber.Error)
			require.True(t, ok, "unexpected error type: %v", err)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		}
	}
	assert.Equal(t, 1, failures, "exactly one of the two payments must be rejected")

	var reloaded invoiceModel.Invoice
	require.NoError(t, db.First(&reloaded, "invoice_id = ?", inv.InvoiceID).Error)
	assert.EqualValues(t, 300, reloaded.InvoiceRemainingAmountIDR)
	assert.EqualValues(t, 700, reloaded.InvoicePaidAmountIDR)
	assert.GreaterOrEqual(t, reloaded.InvoiceRemainingAmountIDR, int64(0))
}

// Concurrent payments against DIFFERENT invoices of one center must
// both commit: the center lock hands out payment numbers one at a
// time, so neither may see a spurious number collision.
func TestRecordPayment_ConcurrentDistinctInvoicesBothCommit(t *testing.T) {
	db := openTestDB(t)
	centerID, invA := seedInvoice(t, db, 1000)

	invB := invoiceModel.Invoice{
		InvoiceCenterID:       centerID,
		InvoiceStudentID:      invA.InvoiceStudentID,
		InvoiceNumber:         "INV-TEST-" + uuid.NewString()[:8],
		InvoiceMonth:          2,
		InvoiceYear:           2026,
		InvoiceAcademicYear:   "2025/2026",
		InvoiceDueDate:        time.Now().AddDate(0, 0, 7),
		InvoiceTotalAmountIDR: 500,
		InvoiceStatus:         invoiceModel.InvoiceStatusPending,
	}
	require.NoError(t, db.Create(&invB).Error)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, target := range []uuid.UUID{invA.InvoiceID, invB.InvoiceID} {
		wg.Add(1)
		go func(slot int, invoiceID uuid.UUID) {
			defer wg.Done()
			id := invoiceID
			_, errs[slot] = RecordPayment(context.Background(), db, centerID, RecordPaymentInput{
				InvoiceID: &id,
				AmountIDR: 500,
				Method:    model.PaymentMethodTransfer,
			})
		}(i, target)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var numbers []int64
	require.NoError(t, db.Model(&model.Payment{}).
		Where("payment_center_id = ?", centerID).
		Order("payment_number").
		Pluck("payment_number", &numbers).Error)
	assert.Equal(t, []int64{1, 2}, numbers)
}

func TestRecordPayment_MultiInvoiceAllocations(t *testing.T) {
	db := openTestDB(t)
	centerID, invA := seedInvoice(t, db, 300)

	// second invoice for the same student, different period
	invB := invoiceModel.Invoice{
		InvoiceCenterID:       centerID,
		InvoiceStudentID:      invA.InvoiceStudentID,
		InvoiceNumber:         "INV-TEST-" + uuid.NewString()[:8],
		InvoiceMonth:          2,
		InvoiceYear:           2026,
		InvoiceAcademicYear:   "2025/2026",
		InvoiceDueDate:        time.Now().AddDate(0, 0, 7),
		InvoiceTotalAmountIDR: 500,
		InvoiceStatus:         invoiceModel.InvoiceStatusPending,
	}
	require.NoError(t, db.Create(&invB).Error)

	res, err := RecordPayment(context.Background(), db, centerID, RecordPaymentInput{
		Allocations: []AllocationInput{
			{InvoiceID: invA.InvoiceID, AmountIDR: 300},
			{InvoiceID: invB.InvoiceID, AmountIDR: 200},
		},
		AmountIDR: 500,
		Method:    model.PaymentMethodQRIS,
	})
	require.NoError(t, err)
	require.Len(t, res.Invoices, 2)

	var allocs int64
	require.NoError(t, db.Model(&model.PaymentAllocation{}).
		Where("payment_allocation_payment_id = ?", res.Payment.PaymentID).
		Count(&allocs).Error)
	assert.EqualValues(t, 2, allocs)

	// one ledger entry for the whole payment, not one per allocation
	var entries int64
	require.NoError(t, db.Model(&ledgerModel.LedgerEntry{}).
		Where("ledger_entry_reference_id = ?", res.Payment.PaymentID).
		Count(&entries).Error)
	assert.EqualValues(t, 1, entries)
}

func TestNormalizeAllocations(t *testing.T) {
	invID := uuid.New()

	t.Run("single invoice form", func(t *testing.T) {
		got, err := normalizeAllocations(RecordPaymentInput{InvoiceID: &invID, AmountIDR: 100})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, invID, got[0].InvoiceID)
		assert.EqualValues(t, 100, got[0].AmountIDR)
	})

	t.Run("both forms rejected", func(t *testing.T) {
		_, err := normalizeAllocations(RecordPaymentInput{
			InvoiceID:   &invID,
			Allocations: []AllocationInput{{InvoiceID: uuid.New(), AmountIDR: 100}},
			AmountIDR:   100,
		})
		require.Error(t, err)
	})

	t.Run("neither form rejected", func(t *testing.T) {
		_, err := normalizeAllocations(RecordPaymentInput{AmountIDR: 100})
		require.Error(t, err)
	})

	t.Run("sum mismatch rejected", func(t *testing.T) {
		_, err := normalizeAllocations(RecordPaymentInput{
			Allocations: []AllocationInput{
				{InvoiceID: uuid.New(), AmountIDR: 60},
				{InvoiceID: uuid.New(), AmountIDR: 30},
			},
			AmountIDR: 100,
		})
		require.Error(t, err)
		fe, ok := err.(*fiber.Error)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
	})

	t.Run("duplicate invoice rejected", func(t *testing.T) {
		_, err := normalizeAllocations(RecordPaymentInput{
			Allocations: []AllocationInput{
				{InvoiceID: invID, AmountIDR: 50},
				{InvoiceID: invID, AmountIDR: 50},
			},
			AmountIDR: 100,
		})
		require.Error(t, err)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := normalizeAllocations(RecordPaymentInput{InvoiceID: &invID, AmountIDR: 0})
		require.Error(t, err)
	})
}
