// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// =========================================================
// ENUM — payment method
// =========================================================

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodQRIS     PaymentMethod = "qris"
	PaymentMethodGateway  PaymentMethod = "gateway" // settled via Midtrans
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodQRIS, PaymentMethodGateway:
		return true
	}
	return false
}

// =========================================================
// MODEL — payments
//
// Immutable once created. Corrections are reversing ledger
// entries, never edits or deletes; there is deliberately no
// DeletedAt column and no update path.
// =========================================================

type Payment struct {
	// PK
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`

	// Tenant
	PaymentCenterID uuid.UUID `gorm:"column:payment_center_id;type:uuid;not null;index:idx_payments_center;uniqueIndex:uniq_payment_number,priority:1" json:"payment_center_id"`

	// FK → students; invoice_id set for the single-invoice path,
	// NULL when the amount is spread via payment_allocations.
	PaymentStudentID uuid.UUID  `gorm:"column:payment_student_id;type:uuid;not null;index" json:"payment_student_id"`
	PaymentInvoiceID *uuid.UUID `gorm:"column:payment_invoice_id;type:uuid;index" json:"payment_invoice_id,omitempty"`

	// Per-center sequence, assigned inside the recorder transaction.
	PaymentNumber int64 `gorm:"column:payment_number;type:bigint;not null;uniqueIndex:uniq_payment_number,priority:2" json:"payment_number"`

	PaymentAmountIDR       int64         `gorm:"column:payment_amount_idr;type:bigint;not null;check:payment_amount_idr>0" json:"payment_amount_idr"`
	PaymentMethod          PaymentMethod `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	PaymentReferenceNumber *string       `gorm:"column:payment_reference_number;type:varchar(60)" json:"payment_reference_number,omitempty"`
	PaymentDate            time.Time     `gorm:"column:payment_date;not null;index" json:"payment_date"`
	PaymentNotes           *string       `gorm:"column:payment_notes;type:text" json:"payment_notes,omitempty"`

	// Who recorded it (staff user) — nil for gateway settlements.
	PaymentRecordedByUserID *uuid.UUID `gorm:"column:payment_recorded_by_user_id;type:uuid" json:"payment_recorded_by_user_id,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;not null;autoCreateTime" json:"payment_created_at"`

	PaymentAllocations []PaymentAllocation `gorm:"foreignKey:PaymentAllocationPaymentID;references:PaymentID" json:"payment_allocations,omitempty"`
}

func (Payment) TableName() string { return "payments" }

// =========================================================
// MODEL — payment_allocations
// Sum of a payment's allocations must equal its amount.
// =========================================================

type PaymentAllocation struct {
	// PK
	PaymentAllocationID uuid.UUID `gorm:"column:payment_allocation_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_allocation_id"`

	// FK → payments / invoices
	PaymentAllocationPaymentID uuid.UUID `gorm:"column:payment_allocation_payment_id;type:uuid;not null;index;uniqueIndex:uniq_payment_invoice,priority:1" json:"payment_allocation_payment_id"`
	PaymentAllocationInvoiceID uuid.UUID `gorm:"column:payment_allocation_invoice_id;type:uuid;not null;index;uniqueIndex:uniq_payment_invoice,priority:2" json:"payment_allocation_invoice_id"`

	PaymentAllocationAmountIDR int64 `gorm:"column:payment_allocation_amount_idr;type:bigint;not null;check:payment_allocation_amount_idr>0" json:"payment_allocation_amount_idr"`

	PaymentAllocationCreatedAt time.Time `gorm:"column:payment_allocation_created_at;not null;autoCreateTime" json:"payment_allocation_created_at"`
}

func (PaymentAllocation) TableName() string { return "payment_allocations" }

// =========================================================
// MODEL — payment_gateway_events (Midtrans webhook audit)
// =========================================================

type PaymentGatewayEvent struct {
	PaymentGatewayEventID uuid.UUID `gorm:"column:payment_gateway_event_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_gateway_event_id"`

	PaymentGatewayEventOrderID   string         `gorm:"column:payment_gateway_event_order_id;type:varchar(80);not null;index" json:"payment_gateway_event_order_id"`
	PaymentGatewayEventInvoiceID *uuid.UUID     `gorm:"column:payment_gateway_event_invoice_id;type:uuid;index" json:"payment_gateway_event_invoice_id,omitempty"`
	PaymentGatewayEventStatus    string         `gorm:"column:payment_gateway_event_status;type:varchar(30);not null" json:"payment_gateway_event_status"`
	PaymentGatewayEventPayload   datatypes.JSON `gorm:"column:payment_gateway_event_payload;type:jsonb" json:"payment_gateway_event_payload"`

	PaymentGatewayEventCreatedAt time.Time `gorm:"column:payment_gateway_event_created_at;not null;autoCreateTime" json:"payment_gateway_event_created_at"`
}

func (PaymentGatewayEvent) TableName() string { return "payment_gateway_events" }
