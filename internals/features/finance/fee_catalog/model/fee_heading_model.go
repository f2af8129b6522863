// file: internals/features/finance/fee_catalog/model/fee_heading_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — fee_headings (named charge categories per center)
// =========================================================

type FeeHeading struct {
	// PK
	FeeHeadingID uuid.UUID `gorm:"column:fee_heading_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_heading_id"`

	// Tenant
	FeeHeadingCenterID uuid.UUID `gorm:"column:fee_heading_center_id;type:uuid;not null;index:idx_fee_headings_center;uniqueIndex:uniq_fee_heading_code,priority:1" json:"fee_heading_center_id"`

	FeeHeadingName string `gorm:"column:fee_heading_name;type:varchar(80);not null" json:"fee_heading_name"`
	FeeHeadingCode string `gorm:"column:fee_heading_code;type:varchar(20);not null;uniqueIndex:uniq_fee_heading_code,priority:2" json:"fee_heading_code"`

	FeeHeadingIsActive  bool `gorm:"column:fee_heading_is_active;not null;default:true;index" json:"fee_heading_is_active"`
	FeeHeadingSortOrder int  `gorm:"column:fee_heading_sort_order;not null;default:0" json:"fee_heading_sort_order"`

	// Timestamps
	FeeHeadingCreatedAt time.Time      `gorm:"column:fee_heading_created_at;not null;autoCreateTime" json:"fee_heading_created_at"`
	FeeHeadingUpdatedAt time.Time      `gorm:"column:fee_heading_updated_at;not null;autoUpdateTime" json:"fee_heading_updated_at"`
	FeeHeadingDeletedAt gorm.DeletedAt `gorm:"column:fee_heading_deleted_at;index" json:"-"`
}

func (FeeHeading) TableName() string { return "fee_headings" }
