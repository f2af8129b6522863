// file: internals/features/finance/assignments/dto/assignment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/finance/assignments/model"
)

// ApplyStructureDTO enrolls students into a fee structure for a year.
type ApplyStructureDTO struct {
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required,min=1"`
}

type ApplyStructureResponse struct {
	AssignmentsCreated    int `json:"assignments_created"`
	AssignmentsSuperseded int `json:"assignments_superseded"`
}

type AssignmentResponse struct {
	StudentFeeAssignmentID           uuid.UUID `json:"student_fee_assignment_id"`
	StudentFeeAssignmentCenterID     uuid.UUID `json:"student_fee_assignment_center_id"`
	StudentFeeAssignmentStudentID    uuid.UUID `json:"student_fee_assignment_student_id"`
	StudentFeeAssignmentFeeHeadingID uuid.UUID `json:"student_fee_assignment_fee_heading_id"`
	StudentFeeAssignmentStructureID  uuid.UUID `json:"student_fee_assignment_structure_id"`
	StudentFeeAssignmentAcademicYear string    `json:"student_fee_assignment_academic_year"`
	StudentFeeAssignmentAmountIDR    int64     `json:"student_fee_assignment_amount_idr"`
	StudentFeeAssignmentIsActive     bool      `json:"student_fee_assignment_is_active"`
	StudentFeeAssignmentCreatedAt    time.Time `json:"student_fee_assignment_created_at"`
}

func ToAssignmentResponse(m model.StudentFeeAssignment) AssignmentResponse {
	return AssignmentResponse{
		StudentFeeAssignmentID:           m.StudentFeeAssignmentID,
		StudentFeeAssignmentCenterID:     m.StudentFeeAssignmentCenterID,
		StudentFeeAssignmentStudentID:    m.StudentFeeAssignmentStudentID,
		StudentFeeAssignmentFeeHeadingID: m.StudentFeeAssignmentFeeHeadingID,
		StudentFeeAssignmentStructureID:  m.StudentFeeAssignmentStructureID,
		StudentFeeAssignmentAcademicYear: m.StudentFeeAssignmentAcademicYear,
		StudentFeeAssignmentAmountIDR:    m.StudentFeeAssignmentAmountIDR,
		StudentFeeAssignmentIsActive:     m.StudentFeeAssignmentIsActive,
		StudentFeeAssignmentCreatedAt:    m.StudentFeeAssignmentCreatedAt,
	}
}
