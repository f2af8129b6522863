// file: internals/features/school/centers/model/center_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Center is the tenant root: a tuition center owning its own students,
// staff and financial records.
type Center struct {
	CenterID uuid.UUID `gorm:"column:center_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"center_id"`

	CenterName     string `gorm:"column:center_name;type:varchar(100);not null" json:"center_name"`
	CenterSlug     string `gorm:"column:center_slug;type:varchar(60);not null;uniqueIndex" json:"center_slug"`
	CenterIsActive bool   `gorm:"column:center_is_active;not null;default:true" json:"center_is_active"`

	CenterCreatedAt time.Time      `gorm:"column:center_created_at;not null;autoCreateTime" json:"center_created_at"`
	CenterUpdatedAt time.Time      `gorm:"column:center_updated_at;not null;autoUpdateTime" json:"center_updated_at"`
	CenterDeletedAt gorm.DeletedAt `gorm:"column:center_deleted_at;index" json:"-"`
}

func (Center) TableName() string { return "centers" }
