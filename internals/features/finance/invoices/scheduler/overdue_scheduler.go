// file: internals/features/finance/invoices/scheduler/overdue_scheduler.go
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// StartOverdueScheduler flips pending/partial invoices past their due
// date to overdue, once a day. Amounts are never touched here: the
// late-fee-per-day field is informational, only the status changes,
// and paid invoices are left alone.
func StartOverdueScheduler(db *gorm.DB) {
	go func() {
		for {
			res := db.Exec(`
				UPDATE invoices
				   SET invoice_status = 'overdue',
				       invoice_updated_at = NOW()
				 WHERE invoice_status IN ('pending', 'partial')
				   AND invoice_due_date < CURRENT_DATE
			`)
			if res.Error != nil {
				log.Printf("[OVERDUE] sweep failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[OVERDUE] %d invoice(s) marked overdue", res.RowsAffected)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
