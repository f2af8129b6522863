// file: internals/features/finance/fee_catalog/model/fee_structure_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — fee_structures (grade-level fee bundle per year)
// =========================================================

type FeeStructure struct {
	// PK
	FeeStructureID uuid.UUID `gorm:"column:fee_structure_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_structure_id"`

	// Tenant
	FeeStructureCenterID uuid.UUID `gorm:"column:fee_structure_center_id;type:uuid;not null;index:idx_fee_structures_center;uniqueIndex:uniq_fee_structure_grade_year,priority:1" json:"fee_structure_center_id"`

	FeeStructureGrade        string `gorm:"column:fee_structure_grade;type:varchar(20);not null;uniqueIndex:uniq_fee_structure_grade_year,priority:2" json:"fee_structure_grade"`
	FeeStructureAcademicYear string `gorm:"column:fee_structure_academic_year;type:varchar(9);not null;uniqueIndex:uniq_fee_structure_grade_year,priority:3" json:"fee_structure_academic_year"`

	// Effective window
	FeeStructureEffectiveFrom *time.Time `gorm:"column:fee_structure_effective_from;type:date" json:"fee_structure_effective_from,omitempty"`
	FeeStructureEffectiveTo   *time.Time `gorm:"column:fee_structure_effective_to;type:date" json:"fee_structure_effective_to,omitempty"`

	// Timestamps
	FeeStructureCreatedAt time.Time      `gorm:"column:fee_structure_created_at;not null;autoCreateTime" json:"fee_structure_created_at"`
	FeeStructureUpdatedAt time.Time      `gorm:"column:fee_structure_updated_at;not null;autoUpdateTime" json:"fee_structure_updated_at"`
	FeeStructureDeletedAt gorm.DeletedAt `gorm:"column:fee_structure_deleted_at;index" json:"-"`

	// Line items (heading → amount)
	FeeStructureItems []FeeStructureItem `gorm:"foreignKey:FeeStructureItemStructureID;references:FeeStructureID" json:"fee_structure_items,omitempty"`
}

func (FeeStructure) TableName() string { return "fee_structures" }

// =========================================================
// MODEL — fee_structure_items
// =========================================================

type FeeStructureItem struct {
	// PK
	FeeStructureItemID uuid.UUID `gorm:"column:fee_structure_item_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_structure_item_id"`

	// FK → fee_structures
	FeeStructureItemStructureID uuid.UUID `gorm:"column:fee_structure_item_structure_id;type:uuid;not null;index;uniqueIndex:uniq_structure_heading,priority:1" json:"fee_structure_item_structure_id"`

	// FK → fee_headings (one row per heading within a structure)
	FeeStructureItemFeeHeadingID uuid.UUID `gorm:"column:fee_structure_item_fee_heading_id;type:uuid;not null;index;uniqueIndex:uniq_structure_heading,priority:2" json:"fee_structure_item_fee_heading_id"`

	FeeStructureItemAmountIDR int64 `gorm:"column:fee_structure_item_amount_idr;type:bigint;not null;check:fee_structure_item_amount_idr>=0" json:"fee_structure_item_amount_idr"`

	// Timestamps
	FeeStructureItemCreatedAt time.Time      `gorm:"column:fee_structure_item_created_at;not null;autoCreateTime" json:"fee_structure_item_created_at"`
	FeeStructureItemUpdatedAt time.Time      `gorm:"column:fee_structure_item_updated_at;not null;autoUpdateTime" json:"fee_structure_item_updated_at"`
	FeeStructureItemDeletedAt gorm.DeletedAt `gorm:"column:fee_structure_item_deleted_at;index" json:"-"`
}

func (FeeStructureItem) TableName() string { return "fee_structure_items" }
