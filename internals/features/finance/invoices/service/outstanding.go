// file: internals/features/finance/invoices/service/outstanding.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutstandingRow is the per-student unpaid aggregate. Read model only;
// it has no write path and always reflects the invoice table.
type OutstandingRow struct {
	StudentID           uuid.UUID `gorm:"column:student_id" json:"student_id"`
	StudentName         string    `gorm:"column:student_name" json:"student_name"`
	StudentGrade        string    `gorm:"column:student_grade" json:"student_grade"`
	OpenInvoices        int       `gorm:"column:open_invoices" json:"open_invoices"`
	OutstandingIDR      int64     `gorm:"column:outstanding_idr" json:"outstanding_idr"`
	OldestUnpaidDueDate *string   `gorm:"column:oldest_due_date" json:"oldest_unpaid_due_date,omitempty"`
}

// ListOutstanding aggregates sum(remaining) per student across all
// unsettled invoices of the center.
func ListOutstanding(ctx context.Context, db *gorm.DB, centerID uuid.UUID) ([]OutstandingRow, error) {
	var rows []OutstandingRow
	err := db.WithContext(ctx).Raw(`
		SELECT s.student_id,
		       s.student_name,
		       s.student_grade,
		       COUNT(i.invoice_id)                      AS open_invoices,
		       COALESCE(SUM(i.invoice_remaining_amount_idr), 0) AS outstanding_idr,
		       TO_CHAR(MIN(i.invoice_due_date), 'YYYY-MM-DD')   AS oldest_due_date
		FROM invoices i
		JOIN students s ON s.student_id = i.invoice_student_id
		WHERE i.invoice_center_id = ?
		  AND i.invoice_status <> 'paid'
		  AND i.invoice_remaining_amount_idr > 0
		GROUP BY s.student_id, s.student_name, s.student_grade
		ORDER BY outstanding_idr DESC
	`, centerID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
