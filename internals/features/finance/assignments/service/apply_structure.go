// file: internals/features/finance/assignments/service/apply_structure.go
package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "bimbelku_backend/internals/features/finance/assignments/model"
	catalogModel "bimbelku_backend/internals/features/finance/fee_catalog/model"
	studentModel "bimbelku_backend/internals/features/school/students/model"
)

type ApplyStructureInput struct {
	StructureID uuid.UUID
	StudentIDs  []uuid.UUID
}

type ApplyStructureResult struct {
	Created    int
	Superseded int
}

// ApplyStructure enrolls students into a fee structure in one
// transaction. Assignments are superseded, never mutated: any prior
// ACTIVE row for the same (student, heading, academic year) is
// deactivated and a fresh row is inserted. The uniq_active_assignment
// partial index backstops concurrent applies, surfacing them as 409.
func ApplyStructure(ctx context.Context, db *gorm.DB, centerID uuid.UUID, in ApplyStructureInput) (*ApplyStructureResult, error) {
	if len(in.StudentIDs) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "student_ids is required")
	}

	var out ApplyStructureResult

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var structure catalogModel.FeeStructure
		if err := tx.
			Preload("FeeStructureItems").
			Where("fee_structure_id = ? AND fee_structure_center_id = ?", in.StructureID, centerID).
			First(&structure).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "fee structure not found")
			}
			return err
		}
		if len(structure.FeeStructureItems) == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "fee structure has no items")
		}

		var activeStudents int64
		if err := tx.Model(&studentModel.Student{}).
			Where("student_id IN ? AND student_center_id = ? AND student_is_active", in.StudentIDs, centerID).
			Count(&activeStudents).Error; err != nil {
			return err
		}
		if int(activeStudents) != len(in.StudentIDs) {
			return fiber.NewError(fiber.StatusBadRequest, "one or more students are unknown or inactive")
		}

		headingIDs := make([]uuid.UUID, 0, len(structure.FeeStructureItems))
		for _, it := range structure.FeeStructureItems {
			headingIDs = append(headingIDs, it.FeeStructureItemFeeHeadingID)
		}

		// supersede the prior active rows first
		res := tx.Model(&model.StudentFeeAssignment{}).
			Where("student_fee_assignment_center_id = ?", centerID).
			Where("student_fee_assignment_student_id IN ?", in.StudentIDs).
			Where("student_fee_assignment_fee_heading_id IN ?", headingIDs).
			Where("student_fee_assignment_academic_year = ?", structure.FeeStructureAcademicYear).
			Where("student_fee_assignment_is_active").
			Update("student_fee_assignment_is_active", false)
		if res.Error != nil {
			return res.Error
		}
		out.Superseded = int(res.RowsAffected)

		rows := make([]model.StudentFeeAssignment, 0, len(in.StudentIDs)*len(structure.FeeStructureItems))
		for _, studentID := range in.StudentIDs {
			for _, it := range structure.FeeStructureItems {
				rows = append(rows, model.StudentFeeAssignment{
					StudentFeeAssignmentCenterID:     centerID,
					StudentFeeAssignmentStudentID:    studentID,
					StudentFeeAssignmentFeeHeadingID: it.FeeStructureItemFeeHeadingID,
					StudentFeeAssignmentStructureID:  structure.FeeStructureID,
					StudentFeeAssignmentAcademicYear: structure.FeeStructureAcademicYear,
					StudentFeeAssignmentAmountIDR:    it.FeeStructureItemAmountIDR,
					StudentFeeAssignmentIsActive:     true,
				})
			}
		}
		if err := tx.Create(&rows).Error; err != nil {
			if strings.Contains(err.Error(), "uniq_active_assignment") {
				return fiber.NewError(fiber.StatusConflict, "another apply is in flight for the same students")
			}
			return err
		}
		out.Created = len(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
