// file: internals/features/school/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "bimbelku_backend/internals/features/school/students/model"
)

type StudentCreateDTO struct {
	StudentName          string  `json:"student_name" validate:"required,max=100"`
	StudentGrade         string  `json:"student_grade" validate:"required,max=20"`
	StudentSchoolName    *string `json:"student_school_name,omitempty" validate:"omitempty,max=100"`
	StudentParentName    *string `json:"student_parent_name,omitempty" validate:"omitempty,max=100"`
	StudentContactNumber string  `json:"student_contact_number" validate:"required,max=20"`
}

type StudentUpdateDTO struct {
	StudentName          *string `json:"student_name,omitempty" validate:"omitempty,max=100"`
	StudentGrade         *string `json:"student_grade,omitempty" validate:"omitempty,max=20"`
	StudentSchoolName    *string `json:"student_school_name,omitempty" validate:"omitempty,max=100"`
	StudentParentName    *string `json:"student_parent_name,omitempty" validate:"omitempty,max=100"`
	StudentContactNumber *string `json:"student_contact_number,omitempty" validate:"omitempty,max=20"`
	StudentIsActive      *bool   `json:"student_is_active,omitempty"`
}

type StudentResponse struct {
	StudentID            uuid.UUID `json:"student_id"`
	StudentCenterID      uuid.UUID `json:"student_center_id"`
	StudentName          string    `json:"student_name"`
	StudentGrade         string    `json:"student_grade"`
	StudentSchoolName    *string   `json:"student_school_name,omitempty"`
	StudentParentName    *string   `json:"student_parent_name,omitempty"`
	StudentContactNumber string    `json:"student_contact_number"`
	StudentIsActive      bool      `json:"student_is_active"`
	StudentCreatedAt     time.Time `json:"student_created_at"`
	StudentUpdatedAt     time.Time `json:"student_updated_at"`
}

func ToStudentResponse(m model.Student) StudentResponse {
	return StudentResponse{
		StudentID:            m.StudentID,
		StudentCenterID:      m.StudentCenterID,
		StudentName:          m.StudentName,
		StudentGrade:         m.StudentGrade,
		StudentSchoolName:    m.StudentSchoolName,
		StudentParentName:    m.StudentParentName,
		StudentContactNumber: m.StudentContactNumber,
		StudentIsActive:      m.StudentIsActive,
		StudentCreatedAt:     m.StudentCreatedAt,
		StudentUpdatedAt:     m.StudentUpdatedAt,
	}
}

func StudentCreateDTOToModel(d StudentCreateDTO, centerID uuid.UUID) model.Student {
	return model.Student{
		StudentCenterID:      centerID,
		StudentName:          d.StudentName,
		StudentGrade:         d.StudentGrade,
		StudentSchoolName:    d.StudentSchoolName,
		StudentParentName:    d.StudentParentName,
		StudentContactNumber: d.StudentContactNumber,
		StudentIsActive:      true,
	}
}

func ApplyStudentUpdate(m *model.Student, d StudentUpdateDTO) {
	if d.StudentName != nil {
		m.StudentName = *d.StudentName
	}
	if d.StudentGrade != nil {
		m.StudentGrade = *d.StudentGrade
	}
	if d.StudentSchoolName != nil {
		m.StudentSchoolName = d.StudentSchoolName
	}
	if d.StudentParentName != nil {
		m.StudentParentName = d.StudentParentName
	}
	if d.StudentContactNumber != nil {
		m.StudentContactNumber = *d.StudentContactNumber
	}
	if d.StudentIsActive != nil {
		m.StudentIsActive = *d.StudentIsActive
	}
}
