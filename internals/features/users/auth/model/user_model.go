// file: internals/features/users/auth/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — users
// =========================================================

type User struct {
	// PK
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`

	// Tenant; NULL for the platform owner.
	UserCenterID *uuid.UUID `gorm:"column:user_center_id;type:uuid;index" json:"user_center_id,omitempty"`

	UserEmail    string `gorm:"column:user_email;type:varchar(120);not null;uniqueIndex" json:"user_email"`
	UserFullName string `gorm:"column:user_full_name;type:varchar(100);not null" json:"user_full_name"`

	// bcrypt hash; never serialized.
	UserPasswordHash string `gorm:"column:user_password_hash;type:varchar(100);not null" json:"-"`

	UserRoles    pq.StringArray `gorm:"column:user_roles;type:text[];not null;default:'{}'" json:"user_roles"`
	UserIsActive bool           `gorm:"column:user_is_active;not null;default:true;index" json:"user_is_active"`

	// Timestamps
	UserCreatedAt time.Time      `gorm:"column:user_created_at;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;not null;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"-"`
}

func (User) TableName() string { return "users" }
