// file: internals/features/finance/payments/service/payment_recorder.go
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	invoiceModel "bimbelku_backend/internals/features/finance/invoices/model"
	ledgerModel "bimbelku_backend/internals/features/finance/ledger/model"
	ledgerService "bimbelku_backend/internals/features/finance/ledger/service"
	model "bimbelku_backend/internals/features/finance/payments/model"
)

// AllocationInput is one (invoice, amount) slice of a payment.
type AllocationInput struct {
	InvoiceID uuid.UUID
	AmountIDR int64
}

// RecordPaymentInput is the full recorder contract. Either InvoiceID
// (single-invoice payment) or Allocations (one payment spread over
// several invoices) must be set, not both.
type RecordPaymentInput struct {
	InvoiceID   *uuid.UUID
	Allocations []AllocationInput

	AmountIDR       int64
	Method          model.PaymentMethod
	ReferenceNumber *string
	Notes           *string
	PaymentDate     time.Time // zero = now

	RecordedByUserID *uuid.UUID
}

// RecordPaymentResult carries the new payment plus the post-update
// snapshot of every touched invoice.
type RecordPaymentResult struct {
	Payment  model.Payment
	Invoices []invoiceModel.Invoice
}

// RecordPayment applies a payment in ONE transaction:
//
//  1. lock the center row (SELECT ... FOR UPDATE),
//  2. lock the invoice rows (FOR UPDATE, tenant-scoped),
//  3. re-validate amount vs remaining under the lock,
//  4. insert the Payment (+ allocations),
//  5. recompute paid/remaining and derive the status,
//  6. append exactly one ledger entry.
//
// The center lock serializes payments within one center, which keeps
// nextPaymentNumber race-free even for payments against different
// invoices. The ledger append needs the same lock anyway for its
// running balance, so no extra contention is introduced. Concurrent
// payments against the same invoice serialize on the invoice row lock,
// so the remaining-balance check can never pass on a stale read. Any
// failure after the insert rolls the whole sequence back.
func RecordPayment(ctx context.Context, db *gorm.DB, centerID uuid.UUID, in RecordPaymentInput) (*RecordPaymentResult, error) {
	allocs, err := normalizeAllocations(in)
	if err != nil {
		return nil, err
	}
	if !model.ValidPaymentMethod(in.Method) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unknown payment method")
	}

	when := in.PaymentDate
	if when.IsZero() {
		when = time.Now()
	}

	var out RecordPaymentResult
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lockedCenterID uuid.UUID
		if err := tx.Table("centers").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("center_id").
			Where("center_id = ? AND center_deleted_at IS NULL", centerID).
			Take(&lockedCenterID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "center not found")
			}
			return err
		}

		// Lock in a stable order so two multi-invoice payments can
		// never deadlock against each other.
		sort.Slice(allocs, func(i, j int) bool {
			return allocs[i].InvoiceID.String() < allocs[j].InvoiceID.String()
		})

		invoices := make([]invoiceModel.Invoice, 0, len(allocs))
		var studentID uuid.UUID
		for _, a := range allocs {
			var inv invoiceModel.Invoice
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&inv, "invoice_id = ? AND invoice_center_id = ?", a.InvoiceID, centerID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusNotFound, "invoice not found")
				}
				return err
			}
			// Validation under the lock, not against a stale read.
			if a.AmountIDR > inv.InvoiceRemainingAmountIDR {
				return fiber.NewError(fiber.StatusBadRequest, "amount exceeds invoice remaining balance")
			}
			if studentID == uuid.Nil {
				studentID = inv.InvoiceStudentID
			} else if studentID != inv.InvoiceStudentID {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "allocations must target one student's invoices")
			}
			invoices = append(invoices, inv)
		}

		number, err := nextPaymentNumber(tx, centerID)
		if err != nil {
			return err
		}

		payment := model.Payment{
			PaymentCenterID:         centerID,
			PaymentStudentID:        studentID,
			PaymentInvoiceID:        in.InvoiceID,
			PaymentNumber:           number,
			PaymentAmountIDR:        in.AmountIDR,
			PaymentMethod:           in.Method,
			PaymentReferenceNumber:  in.ReferenceNumber,
			PaymentDate:             when,
			PaymentNotes:            in.Notes,
			PaymentRecordedByUserID: in.RecordedByUserID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "payment number collision, retry")
			}
			return err
		}

		for i, a := range allocs {
			alloc := model.PaymentAllocation{
				PaymentAllocationPaymentID: payment.PaymentID,
				PaymentAllocationInvoiceID: a.InvoiceID,
				PaymentAllocationAmountIDR: a.AmountIDR,
			}
			if err := tx.Create(&alloc).Error; err != nil {
				return err
			}

			inv := &invoices[i]
			inv.InvoicePaidAmountIDR += a.AmountIDR
			inv.InvoiceRemainingAmountIDR -= a.AmountIDR
			inv.InvoiceStatus = invoiceModel.DeriveStatus(
				inv.InvoiceStatus,
				inv.InvoiceTotalAmountIDR,
				inv.InvoicePaidAmountIDR,
				inv.InvoiceRemainingAmountIDR,
			)
			if err := tx.Model(&invoiceModel.Invoice{}).
				Where("invoice_id = ?", inv.InvoiceID).
				Updates(map[string]any{
					"invoice_paid_amount_idr":      inv.InvoicePaidAmountIDR,
					"invoice_remaining_amount_idr": inv.InvoiceRemainingAmountIDR,
					"invoice_status":               inv.InvoiceStatus,
					"invoice_updated_at":           time.Now(),
				}).Error; err != nil {
				return err
			}
		}

		// Exactly one journal entry per payment, same transaction.
		if _, err := ledgerService.AppendEntry(ctx, tx, centerID, ledgerService.AppendInput{
			Type:            ledgerModel.LedgerEntryTypePayment,
			CreditIDR:       in.AmountIDR,
			ReferenceType:   ledgerModel.LedgerRefPayment,
			ReferenceID:     payment.PaymentID,
			TransactionDate: when,
		}); err != nil {
			return err
		}

		out = RecordPaymentResult{Payment: payment, Invoices: invoices}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func normalizeAllocations(in RecordPaymentInput) ([]AllocationInput, error) {
	if in.AmountIDR <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}
	if in.InvoiceID != nil && len(in.Allocations) > 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "set invoice_id or allocations, not both")
	}
	if in.InvoiceID != nil {
		return []AllocationInput{{InvoiceID: *in.InvoiceID, AmountIDR: in.AmountIDR}}, nil
	}
	if len(in.Allocations) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invoice_id or allocations required")
	}

	var sum int64
	seen := make(map[uuid.UUID]struct{}, len(in.Allocations))
	for _, a := range in.Allocations {
		if a.AmountIDR <= 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "allocation amounts must be positive")
		}
		if _, dup := seen[a.InvoiceID]; dup {
			return nil, fiber.NewError(fiber.StatusBadRequest, "duplicate invoice in allocations")
		}
		seen[a.InvoiceID] = struct{}{}
		sum += a.AmountIDR
	}
	if sum != in.AmountIDR {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "allocations must sum to the payment amount")
	}
	return append([]AllocationInput(nil), in.Allocations...), nil
}

// nextPaymentNumber yields the per-center sequence. Callers hold the
// center row lock, so MAX+1 cannot race; the unique index on
// (center, number) stays as a backstop.
func nextPaymentNumber(tx *gorm.DB, centerID uuid.UUID) (int64, error) {
	var next int64
	if err := tx.Raw(`
		SELECT COALESCE(MAX(payment_number), 0) + 1
		FROM payments
		WHERE payment_center_id = ?
	`, centerID).Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "unique constraint"))
}
