// file: internals/features/finance/assignments/model/student_fee_assignment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — student_fee_assignments
//
// Source of truth for "what this student owes". Rows are
// superseded, never mutated: a fee change deactivates the old
// row and inserts a fresh one. The uniq_active_assignment
// partial unique index, installed by
// database.ApplySchemaConstraints, enforces at most one ACTIVE
// row per (student, heading, academic year).
// =========================================================

type StudentFeeAssignment struct {
	// PK
	StudentFeeAssignmentID uuid.UUID `gorm:"column:student_fee_assignment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_fee_assignment_id"`

	// Tenant
	StudentFeeAssignmentCenterID uuid.UUID `gorm:"column:student_fee_assignment_center_id;type:uuid;not null;index:idx_assignments_center" json:"student_fee_assignment_center_id"`

	// FK → students / fee_headings / fee_structures
	StudentFeeAssignmentStudentID    uuid.UUID `gorm:"column:student_fee_assignment_student_id;type:uuid;not null;index:idx_assignments_student" json:"student_fee_assignment_student_id"`
	StudentFeeAssignmentFeeHeadingID uuid.UUID `gorm:"column:student_fee_assignment_fee_heading_id;type:uuid;not null;index" json:"student_fee_assignment_fee_heading_id"`
	StudentFeeAssignmentStructureID  uuid.UUID `gorm:"column:student_fee_assignment_structure_id;type:uuid;not null;index" json:"student_fee_assignment_structure_id"`

	StudentFeeAssignmentAcademicYear string `gorm:"column:student_fee_assignment_academic_year;type:varchar(9);not null;index" json:"student_fee_assignment_academic_year"`
	StudentFeeAssignmentAmountIDR    int64  `gorm:"column:student_fee_assignment_amount_idr;type:bigint;not null;check:student_fee_assignment_amount_idr>=0" json:"student_fee_assignment_amount_idr"`
	StudentFeeAssignmentIsActive     bool   `gorm:"column:student_fee_assignment_is_active;not null;default:true;index" json:"student_fee_assignment_is_active"`

	// Timestamps
	StudentFeeAssignmentCreatedAt time.Time      `gorm:"column:student_fee_assignment_created_at;not null;autoCreateTime" json:"student_fee_assignment_created_at"`
	StudentFeeAssignmentUpdatedAt time.Time      `gorm:"column:student_fee_assignment_updated_at;not null;autoUpdateTime" json:"student_fee_assignment_updated_at"`
	StudentFeeAssignmentDeletedAt gorm.DeletedAt `gorm:"column:student_fee_assignment_deleted_at;index" json:"-"`
}

func (StudentFeeAssignment) TableName() string { return "student_fee_assignments" }
