// file: internals/features/school/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — students
// =========================================================

type Student struct {
	// PK
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`

	// Tenant
	StudentCenterID uuid.UUID `gorm:"column:student_center_id;type:uuid;not null;index:idx_students_center;uniqueIndex:uniq_student_contact,priority:1" json:"student_center_id"`

	StudentName       string  `gorm:"column:student_name;type:varchar(100);not null" json:"student_name"`
	StudentGrade      string  `gorm:"column:student_grade;type:varchar(20);not null;index" json:"student_grade"`
	StudentSchoolName *string `gorm:"column:student_school_name;type:varchar(100)" json:"student_school_name,omitempty"`
	StudentParentName *string `gorm:"column:student_parent_name;type:varchar(100)" json:"student_parent_name,omitempty"`

	// Duplicate guard: one row per contact number within a center.
	StudentContactNumber string `gorm:"column:student_contact_number;type:varchar(20);not null;uniqueIndex:uniq_student_contact,priority:2" json:"student_contact_number"`

	StudentIsActive bool `gorm:"column:student_is_active;not null;default:true;index" json:"student_is_active"`

	// Timestamps
	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (Student) TableName() string { return "students" }
