// file: internals/features/finance/invoices/service/invoice_generator.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "bimbelku_backend/internals/features/finance/invoices/model"
)

// GenerateInput describes one billing run for a center.
type GenerateInput struct {
	AcademicYear     string
	Month            int
	Year             int
	DueInDays        int
	LateFeePerDayIDR *int64
}

// GenerateResult reports what the run did. Skipped counts students who
// were already invoiced for the period plus those with nothing to bill;
// re-runs for the same period come back with Inserted=0.
type GenerateResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Students int `json:"students"`
}

type assignmentRow struct {
	StudentID    uuid.UUID `gorm:"column:student_id"`
	FeeHeadingID uuid.UUID `gorm:"column:fee_heading_id"`
	AmountIDR    int64     `gorm:"column:amount_idr"`
}

// GenerateInvoices creates one invoice per eligible student from the
// active fee assignments, in a single transaction.
//
// Idempotency is carried by the unique index on
// (center, student, month, year) plus ON CONFLICT DO NOTHING — not by a
// client-side pre-check. A student with zero active assignments simply
// does not appear in the batch; an empty cohort is a valid empty run.
func GenerateInvoices(ctx context.Context, db *gorm.DB, centerID uuid.UUID, in GenerateInput) (*GenerateResult, error) {
	if in.Month < 1 || in.Month > 12 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "month must be 1..12")
	}
	if in.Year < 2000 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid year")
	}
	if in.DueInDays < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "due_in_days must be >= 0")
	}
	if strings.TrimSpace(in.AcademicYear) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "academic_year required")
	}

	dueDate := time.Now().AddDate(0, 0, in.DueInDays)

	var out GenerateResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Active assignments of active students, grouped per student in
		// Go (one pass, ordered by student).
		var rows []assignmentRow
		if err := tx.Raw(`
			SELECT a.student_fee_assignment_student_id     AS student_id,
			       a.student_fee_assignment_fee_heading_id AS fee_heading_id,
			       a.student_fee_assignment_amount_idr     AS amount_idr
			FROM student_fee_assignments a
			JOIN students s
			  ON s.student_id = a.student_fee_assignment_student_id
			 AND s.student_deleted_at IS NULL
			 AND s.student_is_active
			WHERE a.student_fee_assignment_center_id = ?
			  AND a.student_fee_assignment_academic_year = ?
			  AND a.student_fee_assignment_is_active
			  AND a.student_fee_assignment_deleted_at IS NULL
			ORDER BY a.student_fee_assignment_student_id
		`, centerID, in.AcademicYear).Scan(&rows).Error; err != nil {
			return err
		}

		byStudent := make(map[uuid.UUID][]assignmentRow)
		order := make([]uuid.UUID, 0)
		for _, r := range rows {
			if _, ok := byStudent[r.StudentID]; !ok {
				order = append(order, r.StudentID)
			}
			byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
		}
		out.Students = len(order)

		for _, sid := range order {
			items := byStudent[sid]
			var total int64
			for _, it := range items {
				total += it.AmountIDR
			}
			if total == 0 {
				// Nothing to bill. A zero invoice would be born with
				// remaining=0 but could never be marked off, so it is
				// not created at all.
				out.Skipped++
				continue
			}

			inv := model.Invoice{
				InvoiceCenterID:           centerID,
				InvoiceStudentID:          sid,
				InvoiceNumber:             newInvoiceNumber(in.Year, in.Month),
				InvoiceMonth:              in.Month,
				InvoiceYear:               in.Year,
				InvoiceAcademicYear:       in.AcademicYear,
				InvoiceDueDate:            dueDate,
				InvoiceLateFeePerDayIDR:   in.LateFeePerDayIDR,
				InvoiceTotalAmountIDR:     total,
				InvoiceRemainingAmountIDR: total,
				InvoiceStatus:             model.InvoiceStatusPending,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "invoice_center_id"},
					{Name: "invoice_student_id"},
					{Name: "invoice_month"},
					{Name: "invoice_year"},
				},
				DoNothing: true,
			}).Create(&inv).Error; err != nil {
				return err
			}
			if inv.InvoiceID == uuid.Nil {
				// already invoiced for this period
				out.Skipped++
				continue
			}

			for _, it := range items {
				line := model.InvoiceItem{
					InvoiceItemInvoiceID:      inv.InvoiceID,
					InvoiceItemFeeHeadingID:   it.FeeHeadingID,
					InvoiceItemQuantity:       1,
					InvoiceItemUnitAmountIDR:  it.AmountIDR,
					InvoiceItemTotalAmountIDR: it.AmountIDR,
				}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
			}
			out.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// newInvoiceNumber is unique per center by construction (uuid suffix);
// uniqueness is still enforced by the (center, number) index.
func newInvoiceNumber(year, month int) string {
	u := uuid.New().String()
	return fmt.Sprintf("INV-%04d%02d-%s", year, month, strings.ToUpper(u[:8]))
}
