// file: internals/features/finance/fee_catalog/dto/fee_catalog_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/finance/fee_catalog/model"
)

////////////////////////////////////////////////////////////////////////////////
// FEE HEADINGS — DTO
////////////////////////////////////////////////////////////////////////////////

type FeeHeadingCreateDTO struct {
	FeeHeadingName      string `json:"fee_heading_name" validate:"required,max=80"`
	FeeHeadingCode      string `json:"fee_heading_code" validate:"required,max=20"`
	FeeHeadingSortOrder int    `json:"fee_heading_sort_order"`
}

// Update is partial; code is immutable once the heading exists so that
// invoice items keep pointing at a stable category.
type FeeHeadingUpdateDTO struct {
	FeeHeadingName      *string `json:"fee_heading_name,omitempty" validate:"omitempty,max=80"`
	FeeHeadingIsActive  *bool   `json:"fee_heading_is_active,omitempty"`
	FeeHeadingSortOrder *int    `json:"fee_heading_sort_order,omitempty"`
}

type FeeHeadingResponse struct {
	FeeHeadingID        uuid.UUID `json:"fee_heading_id"`
	FeeHeadingCenterID  uuid.UUID `json:"fee_heading_center_id"`
	FeeHeadingName      string    `json:"fee_heading_name"`
	FeeHeadingCode      string    `json:"fee_heading_code"`
	FeeHeadingIsActive  bool      `json:"fee_heading_is_active"`
	FeeHeadingSortOrder int       `json:"fee_heading_sort_order"`
	FeeHeadingCreatedAt time.Time `json:"fee_heading_created_at"`
	FeeHeadingUpdatedAt time.Time `json:"fee_heading_updated_at"`
}

func ToFeeHeadingResponse(m model.FeeHeading) FeeHeadingResponse {
	return FeeHeadingResponse{
		FeeHeadingID:        m.FeeHeadingID,
		FeeHeadingCenterID:  m.FeeHeadingCenterID,
		FeeHeadingName:      m.FeeHeadingName,
		FeeHeadingCode:      m.FeeHeadingCode,
		FeeHeadingIsActive:  m.FeeHeadingIsActive,
		FeeHeadingSortOrder: m.FeeHeadingSortOrder,
		FeeHeadingCreatedAt: m.FeeHeadingCreatedAt,
		FeeHeadingUpdatedAt: m.FeeHeadingUpdatedAt,
	}
}

func ApplyFeeHeadingUpdate(m *model.FeeHeading, d FeeHeadingUpdateDTO) {
	if d.FeeHeadingName != nil {
		m.FeeHeadingName = *d.FeeHeadingName
	}
	if d.FeeHeadingIsActive != nil {
		m.FeeHeadingIsActive = *d.FeeHeadingIsActive
	}
	if d.FeeHeadingSortOrder != nil {
		m.FeeHeadingSortOrder = *d.FeeHeadingSortOrder
	}
}

////////////////////////////////////////////////////////////////////////////////
// FEE STRUCTURES — DTO
////////////////////////////////////////////////////////////////////////////////

type FeeStructureItemDTO struct {
	FeeHeadingID uuid.UUID `json:"fee_heading_id" validate:"required"`
	AmountIDR    int64     `json:"amount_idr" validate:"required,min=0"`
}

type FeeStructureCreateDTO struct {
	FeeStructureGrade         string                `json:"fee_structure_grade" validate:"required,max=20"`
	FeeStructureAcademicYear  string                `json:"fee_structure_academic_year" validate:"required,max=9"`
	FeeStructureEffectiveFrom *time.Time            `json:"fee_structure_effective_from,omitempty"`
	FeeStructureEffectiveTo   *time.Time            `json:"fee_structure_effective_to,omitempty"`
	FeeStructureItems         []FeeStructureItemDTO `json:"fee_structure_items" validate:"required,min=1,dive"`
}

type FeeStructureItemResponse struct {
	FeeStructureItemID           uuid.UUID `json:"fee_structure_item_id"`
	FeeStructureItemFeeHeadingID uuid.UUID `json:"fee_structure_item_fee_heading_id"`
	FeeStructureItemAmountIDR    int64     `json:"fee_structure_item_amount_idr"`
}

type FeeStructureResponse struct {
	FeeStructureID            uuid.UUID                  `json:"fee_structure_id"`
	FeeStructureCenterID      uuid.UUID                  `json:"fee_structure_center_id"`
	FeeStructureGrade         string                     `json:"fee_structure_grade"`
	FeeStructureAcademicYear  string                     `json:"fee_structure_academic_year"`
	FeeStructureEffectiveFrom *time.Time                 `json:"fee_structure_effective_from,omitempty"`
	FeeStructureEffectiveTo   *time.Time                 `json:"fee_structure_effective_to,omitempty"`
	FeeStructureItems         []FeeStructureItemResponse `json:"fee_structure_items"`
	FeeStructureCreatedAt     time.Time                  `json:"fee_structure_created_at"`
}

func ToFeeStructureResponse(m model.FeeStructure) FeeStructureResponse {
	items := make([]FeeStructureItemResponse, 0, len(m.FeeStructureItems))
	for _, it := range m.FeeStructureItems {
		items = append(items, FeeStructureItemResponse{
			FeeStructureItemID:           it.FeeStructureItemID,
			FeeStructureItemFeeHeadingID: it.FeeStructureItemFeeHeadingID,
			FeeStructureItemAmountIDR:    it.FeeStructureItemAmountIDR,
		})
	}
	return FeeStructureResponse{
		FeeStructureID:            m.FeeStructureID,
		FeeStructureCenterID:      m.FeeStructureCenterID,
		FeeStructureGrade:         m.FeeStructureGrade,
		FeeStructureAcademicYear:  m.FeeStructureAcademicYear,
		FeeStructureEffectiveFrom: m.FeeStructureEffectiveFrom,
		FeeStructureEffectiveTo:   m.FeeStructureEffectiveTo,
		FeeStructureItems:         items,
		FeeStructureCreatedAt:     m.FeeStructureCreatedAt,
	}
}
