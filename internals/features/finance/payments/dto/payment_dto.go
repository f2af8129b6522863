// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/finance/payments/model"
)

////////////////////////////////////////////////////////////////////////////////
// PAYMENTS — DTO
////////////////////////////////////////////////////////////////////////////////

type PaymentAllocationDTO struct {
	InvoiceID uuid.UUID `json:"invoice_id" validate:"required"`
	AmountIDR int64     `json:"amount_idr" validate:"required,gt=0"`
}

// PaymentCreateDTO accepts either the single-invoice form (invoice_id)
// or the multi-invoice form (allocations), never both.
type PaymentCreateDTO struct {
	InvoiceID   *uuid.UUID             `json:"invoice_id,omitempty"`
	Allocations []PaymentAllocationDTO `json:"allocations,omitempty" validate:"omitempty,min=1,dive"`

	AmountIDR       int64   `json:"amount_idr" validate:"required,gt=0"`
	Method          string  `json:"method" validate:"required,max=20"`
	ReferenceNumber *string `json:"reference_number,omitempty" validate:"omitempty,max=60"`
	Notes           *string `json:"notes,omitempty"`

	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

type PaymentAllocationResponse struct {
	PaymentAllocationID        uuid.UUID `json:"payment_allocation_id"`
	PaymentAllocationInvoiceID uuid.UUID `json:"payment_allocation_invoice_id"`
	PaymentAllocationAmountIDR int64     `json:"payment_allocation_amount_idr"`
}

type PaymentResponse struct {
	PaymentID        uuid.UUID  `json:"payment_id"`
	PaymentCenterID  uuid.UUID  `json:"payment_center_id"`
	PaymentStudentID uuid.UUID  `json:"payment_student_id"`
	PaymentInvoiceID *uuid.UUID `json:"payment_invoice_id,omitempty"`
	PaymentNumber    int64      `json:"payment_number"`

	PaymentAmountIDR       int64   `json:"payment_amount_idr"`
	PaymentMethod          string  `json:"payment_method"`
	PaymentReferenceNumber *string `json:"payment_reference_number,omitempty"`
	PaymentNotes           *string `json:"payment_notes,omitempty"`

	PaymentDate      time.Time `json:"payment_date"`
	PaymentCreatedAt time.Time `json:"payment_created_at"`

	PaymentAllocations []PaymentAllocationResponse `json:"payment_allocations,omitempty"`
}

func ToPaymentResponse(m model.Payment) PaymentResponse {
	allocs := make([]PaymentAllocationResponse, 0, len(m.PaymentAllocations))
	for _, a := range m.PaymentAllocations {
		allocs = append(allocs, PaymentAllocationResponse{
			PaymentAllocationID:        a.PaymentAllocationID,
			PaymentAllocationInvoiceID: a.PaymentAllocationInvoiceID,
			PaymentAllocationAmountIDR: a.PaymentAllocationAmountIDR,
		})
	}
	return PaymentResponse{
		PaymentID:              m.PaymentID,
		PaymentCenterID:        m.PaymentCenterID,
		PaymentStudentID:       m.PaymentStudentID,
		PaymentInvoiceID:       m.PaymentInvoiceID,
		PaymentNumber:          m.PaymentNumber,
		PaymentAmountIDR:       m.PaymentAmountIDR,
		PaymentMethod:          string(m.PaymentMethod),
		PaymentReferenceNumber: m.PaymentReferenceNumber,
		PaymentNotes:           m.PaymentNotes,
		PaymentDate:            m.PaymentDate,
		PaymentCreatedAt:       m.PaymentCreatedAt,
		PaymentAllocations:     allocs,
	}
}

////////////////////////////////////////////////////////////////////////////////
// MIDTRANS — DTO
////////////////////////////////////////////////////////////////////////////////

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
	AmountIDR   int64  `json:"amount_idr"`
	// Public Snap key the frontend needs to open the payment popup.
	ClientKey string `json:"client_key"`
}

// MidtransNotificationDTO mirrors the gateway webhook body (subset we
// act on; the full payload is archived as a gateway event).
type MidtransNotificationDTO struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
}
