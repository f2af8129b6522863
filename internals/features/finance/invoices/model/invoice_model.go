// file: internals/features/finance/invoices/model/invoice_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — invoice status
// =========================================================

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// DeriveStatus returns the status implied by the balance fields:
// paid iff remaining == 0, partial iff 0 < paid < total, otherwise the
// current status stands. A payment against an overdue invoice pulls it
// back to partial/paid; the daily sweep re-flags it if it stays late.
func DeriveStatus(current InvoiceStatus, totalIDR, paidIDR, remainingIDR int64) InvoiceStatus {
	switch {
	case remainingIDR == 0:
		return InvoiceStatusPaid
	case paidIDR > 0 && paidIDR < totalIDR:
		return InvoiceStatusPartial
	default:
		return current
	}
}

// =========================================================
// MODEL — invoices
//
// Financial record: created once by the generator, mutated only
// by the payment recorder, never deleted. Invariant at all
// times: invoice_paid_amount_idr + invoice_remaining_amount_idr
// == invoice_total_amount_idr.
// =========================================================

type Invoice struct {
	// PK
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"invoice_id"`

	// Tenant
	InvoiceCenterID uuid.UUID `gorm:"column:invoice_center_id;type:uuid;not null;index:idx_invoices_center;uniqueIndex:uniq_invoice_number,priority:1;uniqueIndex:uniq_invoice_period,priority:1" json:"invoice_center_id"`

	// FK → students
	InvoiceStudentID uuid.UUID `gorm:"column:invoice_student_id;type:uuid;not null;index:idx_invoices_student;uniqueIndex:uniq_invoice_period,priority:2" json:"invoice_student_id"`

	// Identity & billing period. uniq_invoice_period is the duplicate
	// guard the generator relies on (ON CONFLICT DO NOTHING).
	InvoiceNumber       string `gorm:"column:invoice_number;type:varchar(40);not null;uniqueIndex:uniq_invoice_number,priority:2" json:"invoice_number"`
	InvoiceMonth        int    `gorm:"column:invoice_month;type:smallint;not null;check:invoice_month BETWEEN 1 AND 12;uniqueIndex:uniq_invoice_period,priority:3" json:"invoice_month"`
	InvoiceYear         int    `gorm:"column:invoice_year;type:smallint;not null;uniqueIndex:uniq_invoice_period,priority:4" json:"invoice_year"`
	InvoiceAcademicYear string `gorm:"column:invoice_academic_year;type:varchar(9);not null;index" json:"invoice_academic_year"`

	InvoiceDueDate          time.Time `gorm:"column:invoice_due_date;type:date;not null;index" json:"invoice_due_date"`
	InvoiceLateFeePerDayIDR *int64    `gorm:"column:invoice_late_fee_per_day_idr;type:bigint" json:"invoice_late_fee_per_day_idr,omitempty"`

	// Balance fields
	InvoiceTotalAmountIDR     int64 `gorm:"column:invoice_total_amount_idr;type:bigint;not null;check:invoice_total_amount_idr>=0" json:"invoice_total_amount_idr"`
	InvoicePaidAmountIDR      int64 `gorm:"column:invoice_paid_amount_idr;type:bigint;not null;default:0;check:invoice_paid_amount_idr>=0" json:"invoice_paid_amount_idr"`
	InvoiceRemainingAmountIDR int64 `gorm:"column:invoice_remaining_amount_idr;type:bigint;not null;check:invoice_remaining_amount_idr>=0" json:"invoice_remaining_amount_idr"`

	InvoiceStatus InvoiceStatus `gorm:"column:invoice_status;type:varchar(10);not null;default:'pending';index:idx_invoices_status" json:"invoice_status"`

	// Timestamps (no DeletedAt: invoices are permanent records)
	InvoiceCreatedAt time.Time `gorm:"column:invoice_created_at;not null;autoCreateTime" json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time `gorm:"column:invoice_updated_at;not null;autoUpdateTime" json:"invoice_updated_at"`

	InvoiceItems []InvoiceItem `gorm:"foreignKey:InvoiceItemInvoiceID;references:InvoiceID" json:"invoice_items,omitempty"`
}

func (Invoice) TableName() string { return "invoices" }

func (m *Invoice) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceRemainingAmountIDR == 0 && m.InvoicePaidAmountIDR == 0 {
		m.InvoiceRemainingAmountIDR = m.InvoiceTotalAmountIDR
	}
	return nil
}

// =========================================================
// MODEL — invoice_items (line-item breakdown)
// Sum of item totals must equal the invoice total.
// =========================================================

type InvoiceItem struct {
	// PK
	InvoiceItemID uuid.UUID `gorm:"column:invoice_item_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"invoice_item_id"`

	// FK → invoices / fee_headings
	InvoiceItemInvoiceID    uuid.UUID `gorm:"column:invoice_item_invoice_id;type:uuid;not null;index" json:"invoice_item_invoice_id"`
	InvoiceItemFeeHeadingID uuid.UUID `gorm:"column:invoice_item_fee_heading_id;type:uuid;not null;index" json:"invoice_item_fee_heading_id"`

	InvoiceItemQuantity       int   `gorm:"column:invoice_item_quantity;not null;default:1;check:invoice_item_quantity>0" json:"invoice_item_quantity"`
	InvoiceItemUnitAmountIDR  int64 `gorm:"column:invoice_item_unit_amount_idr;type:bigint;not null;check:invoice_item_unit_amount_idr>=0" json:"invoice_item_unit_amount_idr"`
	InvoiceItemTotalAmountIDR int64 `gorm:"column:invoice_item_total_amount_idr;type:bigint;not null;check:invoice_item_total_amount_idr>=0" json:"invoice_item_total_amount_idr"`

	InvoiceItemCreatedAt time.Time `gorm:"column:invoice_item_created_at;not null;autoCreateTime" json:"invoice_item_created_at"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }
