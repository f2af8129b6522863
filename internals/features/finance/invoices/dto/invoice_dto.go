// file: internals/features/finance/invoices/dto/invoice_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/finance/invoices/model"
)

////////////////////////////////////////////////////////////////////////////////
// INVOICES — DTO
////////////////////////////////////////////////////////////////////////////////

type GenerateInvoicesDTO struct {
	AcademicYear     string `json:"academic_year" validate:"required,max=9"`
	Month            int    `json:"month" validate:"required,min=1,max=12"`
	Year             int    `json:"year" validate:"required,min=2000"`
	DueInDays        int    `json:"due_in_days" validate:"min=0"`
	LateFeePerDayIDR *int64 `json:"late_fee_per_day_idr,omitempty" validate:"omitempty,min=0"`
}

type InvoiceItemResponse struct {
	InvoiceItemID             uuid.UUID `json:"invoice_item_id"`
	InvoiceItemFeeHeadingID   uuid.UUID `json:"invoice_item_fee_heading_id"`
	InvoiceItemQuantity       int       `json:"invoice_item_quantity"`
	InvoiceItemUnitAmountIDR  int64     `json:"invoice_item_unit_amount_idr"`
	InvoiceItemTotalAmountIDR int64     `json:"invoice_item_total_amount_idr"`
}

type InvoiceResponse struct {
	InvoiceID           uuid.UUID `json:"invoice_id"`
	InvoiceCenterID     uuid.UUID `json:"invoice_center_id"`
	InvoiceStudentID    uuid.UUID `json:"invoice_student_id"`
	InvoiceNumber       string    `json:"invoice_number"`
	InvoiceMonth        int       `json:"invoice_month"`
	InvoiceYear         int       `json:"invoice_year"`
	InvoiceAcademicYear string    `json:"invoice_academic_year"`

	InvoiceDueDate          time.Time `json:"invoice_due_date"`
	InvoiceLateFeePerDayIDR *int64    `json:"invoice_late_fee_per_day_idr,omitempty"`

	InvoiceTotalAmountIDR     int64  `json:"invoice_total_amount_idr"`
	InvoicePaidAmountIDR      int64  `json:"invoice_paid_amount_idr"`
	InvoiceRemainingAmountIDR int64  `json:"invoice_remaining_amount_idr"`
	InvoiceStatus             string `json:"invoice_status"`

	InvoiceItems []InvoiceItemResponse `json:"invoice_items,omitempty"`

	InvoiceCreatedAt time.Time `json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time `json:"invoice_updated_at"`
}

func ToInvoiceResponse(m model.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(m.InvoiceItems))
	for _, it := range m.InvoiceItems {
		items = append(items, InvoiceItemResponse{
			InvoiceItemID:             it.InvoiceItemID,
			InvoiceItemFeeHeadingID:   it.InvoiceItemFeeHeadingID,
			InvoiceItemQuantity:       it.InvoiceItemQuantity,
			InvoiceItemUnitAmountIDR:  it.InvoiceItemUnitAmountIDR,
			InvoiceItemTotalAmountIDR: it.InvoiceItemTotalAmountIDR,
		})
	}
	return InvoiceResponse{
		InvoiceID:                 m.InvoiceID,
		InvoiceCenterID:           m.InvoiceCenterID,
		InvoiceStudentID:          m.InvoiceStudentID,
		InvoiceNumber:             m.InvoiceNumber,
		InvoiceMonth:              m.InvoiceMonth,
		InvoiceYear:               m.InvoiceYear,
		InvoiceAcademicYear:       m.InvoiceAcademicYear,
		InvoiceDueDate:            m.InvoiceDueDate,
		InvoiceLateFeePerDayIDR:   m.InvoiceLateFeePerDayIDR,
		InvoiceTotalAmountIDR:     m.InvoiceTotalAmountIDR,
		InvoicePaidAmountIDR:      m.InvoicePaidAmountIDR,
		InvoiceRemainingAmountIDR: m.InvoiceRemainingAmountIDR,
		InvoiceStatus:             string(m.InvoiceStatus),
		InvoiceItems:              items,
		InvoiceCreatedAt:          m.InvoiceCreatedAt,
		InvoiceUpdatedAt:          m.InvoiceUpdatedAt,
	}
}
